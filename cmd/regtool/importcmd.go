package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "import <source-file>",
		Short: "Load a registry text file's keys into --root, then save --file",
		Long: `import runs load_registry against source-file, merging its keys into
the in-memory tree rooted at --root, then saves the combined tree back
to --file the way every other mutating command does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	})
}

func runImport(sourceFile string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	loadHandle := s.mgr.RegisterFile(sourceFile)
	if err := s.svc.LoadRegistry(s.root, loadHandle); err != nil {
		s.close()
		return err
	}

	if jsonOut {
		if err := s.saveAndClose(); err != nil {
			return err
		}
		return printJSON(map[string]any{"imported": sourceFile})
	}
	printInfo("Imported %s into %s\n", sourceFile, rootName)
	return s.saveAndClose()
}
