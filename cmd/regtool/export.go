package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "export <dest-file>",
		Short: "Save --root's subtree to dest-file",
		Long: `export runs save_registry against --root, writing dest-file with
whichever codec --save-version selects (0 for v2, 1 for the legacy
write-only v1 format), independent of --file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0])
		},
	})
}

func runExport(destFile string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	saveHandle := s.mgr.RegisterFile(destFile)
	if err := s.svc.SaveRegistry(s.root, saveHandle); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"exported": destFile})
	}
	printInfo("Exported %s to %s\n", rootName, destFile)
	return nil
}
