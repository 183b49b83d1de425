package main

import (
	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "delete-value <path> <name>",
		Short: "Delete a value from a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteValue(args[0], args[1])
		},
	})
}

func runDeleteValue(path, name string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	h, err := s.svc.OpenKey(s.root, path, types.KeySetValue)
	if err != nil {
		s.close()
		return err
	}

	if err := s.svc.DeleteKeyValue(h, name); err != nil {
		_ = s.svc.CloseKey(h)
		s.close()
		return err
	}
	_ = s.svc.CloseKey(h)

	if jsonOut {
		if err := s.saveAndClose(); err != nil {
			return err
		}
		return printJSON(map[string]any{"path": path, "name": name, "deleted": true})
	}
	printInfo("Deleted %s!%s\n", path, name)
	return s.saveAndClose()
}
