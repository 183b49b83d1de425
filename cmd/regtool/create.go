package main

import (
	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

var createVolatile bool

func init() {
	cmd := newCreateCmd()
	cmd.Flags().BoolVar(&createVolatile, "volatile", false, "create the key as volatile (not saved, gone on restart)")
	rootCmd.AddCommand(cmd)
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <path>",
		Short: "Create a key, or open it if it already exists",
		Long: `create resolves --root and creates every missing component of path
beneath it, the way create_key does when a handle's path traverses
several new subkeys at once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0])
		},
	}
}

func runCreate(path string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	options := types.OptionNonVolatile
	if createVolatile {
		options = types.OptionVolatile
	}
	h, created, err := s.svc.CreateKey(s.root, path, nil, options)
	if err != nil {
		s.close()
		return err
	}
	_ = s.svc.CloseKey(h)

	if jsonOut {
		if err := s.saveAndClose(); err != nil {
			return err
		}
		return printJSON(map[string]any{"path": path, "created": created})
	}

	if created {
		printInfo("Created %s\n", path)
	} else {
		printInfo("%s already exists\n", path)
	}
	return s.saveAndClose()
}
