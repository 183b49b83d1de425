package main

import (
	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

var getShowType bool

func init() {
	cmd := &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a value from a key",
		Long: `get opens path beneath --root and get_key_values the named value.
Pass "" for name to read the key's default value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&getShowType, "type", false, "show the value's type alongside its data")
	rootCmd.AddCommand(cmd)
}

func runGet(path, name string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.svc.OpenKey(s.root, path, types.KeyQueryValue)
	if err != nil {
		return err
	}
	defer s.svc.CloseKey(h) //nolint:errcheck // best-effort close on a read-only path

	typ, data, err := s.svc.GetKeyValue(h, name)
	if err != nil {
		return err
	}

	rendered := renderValueData(typ, data)
	if jsonOut {
		return printJSON(map[string]any{"name": name, "type": typ.String(), "value": rendered})
	}
	if getShowType {
		printInfo("%s\t%s\n", typ, rendered)
	} else {
		printInfo("%s\n", rendered)
	}
	return nil
}
