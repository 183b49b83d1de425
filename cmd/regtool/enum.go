package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "enum [path]",
		Short: "List the immediate subkeys of a key",
		Long: `enum opens path (or --root itself, if path is omitted) and walks
enum_key from index 0 until NoMoreItems, printing each subkey's name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEnum(path)
		},
	})
}

func runEnum(path string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.svc.OpenKey(s.root, path, types.KeyEnumerateSubKeys)
	if err != nil {
		return err
	}
	defer s.svc.CloseKey(h) //nolint:errcheck // best-effort close on a read-only path

	var names []string
	for i := 0; ; i++ {
		name, _, _, err := s.svc.EnumKey(h, i)
		if errors.Is(err, types.ErrNoMoreItems) {
			break
		}
		if err != nil {
			return err
		}
		names = append(names, name)
	}

	if jsonOut {
		return printJSON(names)
	}
	for _, n := range names {
		printInfo("%s\n", n)
	}
	return nil
}
