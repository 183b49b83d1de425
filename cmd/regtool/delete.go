package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a key that has no subkeys",
		Long: `delete resolves --root and delete_keys the named subpath. A key
with subkeys of its own cannot be removed this way, matching
delete_key's AccessDenied-if-children-exist behavior.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	})
}

func runDelete(path string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	if err := s.svc.DeleteKey(s.root, path); err != nil {
		s.close()
		return err
	}

	if jsonOut {
		if err := s.saveAndClose(); err != nil {
			return err
		}
		return printJSON(map[string]any{"path": path, "deleted": true})
	}
	printInfo("Deleted %s\n", path)
	return s.saveAndClose()
}
