package main

import (
	"github.com/spf13/cobra"

	"github.com/go-compat/regsrv/pkg/types"
)

var setType string

func init() {
	cmd := &cobra.Command{
		Use:   "set <path> <name> <value>",
		Short: "Set a value on a key",
		Long: `set opens path beneath --root and set_key_values the named value.
Pass "" for name to set the key's default value.

Example:
  regtool set "Software\MyApp" Version 1.0.0
  regtool set "Software\MyApp" Enabled 1 --type dword
  regtool set "Software\MyApp" Data 0102030405 --type binary`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1], args[2])
		},
	}
	cmd.Flags().StringVar(&setType, "type", "sz", "value type: sz, expand_sz, multi_sz, binary, dword, qword")
	rootCmd.AddCommand(cmd)
}

func runSet(path, name, value string) error {
	typ, data, err := parseValueArg(setType, value)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	h, err := s.svc.OpenKey(s.root, path, types.KeySetValue)
	if err != nil {
		s.close()
		return err
	}

	if err := s.svc.SetKeyValue(h, name, typ, data); err != nil {
		_ = s.svc.CloseKey(h)
		s.close()
		return err
	}
	_ = s.svc.CloseKey(h)

	if jsonOut {
		if err := s.saveAndClose(); err != nil {
			return err
		}
		return printJSON(map[string]any{"path": path, "name": name, "type": typ.String(), "value": value})
	}
	printInfo("Set %s!%s = %s (%s)\n", path, name, value, typ)
	return s.saveAndClose()
}
