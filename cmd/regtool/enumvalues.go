package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "values [path]",
		Short: "List the values attached to a key",
		Long: `values opens path (or --root itself, if path is omitted) and walks
enum_key_value from index 0 until NoMoreItems, printing each value's
name and type.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEnumValues(path)
		},
	})
}

func runEnumValues(path string) error {
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

	type value struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	var values []value
	for i := 0; ; i++ {
		v, err := s.svc.EnumKeyValue(h, i)
		if errors.Is(err, types.ErrNoMoreItems) {
			break
		}
		if err != nil {
			return err
		}
		values = append(values, value{Name: v.Name, Type: v.Type.String()})
	}

	if jsonOut {
		return printJSON(values)
	}
	for _, v := range values {
		printInfo("%s\t%s\n", v.Name, v.Type)
	}
	return nil
}
