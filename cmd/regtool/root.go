package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	regFile     string
	rootName    string
	debugLevel  int
	saveVersion int
	verbose     bool
	quiet       bool
	jsonOut     bool
)

var rootCmd = &cobra.Command{
	Use:   "regtool",
	Short: "Inspect and manipulate an in-memory registry tree backed by a text file",
	Long: `regtool drives an in-memory registry tree the same way a real registry
RPC client would: every subcommand loads --file (if it exists), resolves
--root as a well-known root handle, performs one opcode, and saves the
tree back to --file when the opcode mutates it.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&regFile, "file", "f", "", "registry text file to load from and save to")
	rootCmd.PersistentFlags().
		StringVar(&rootName, "root", "HKEY_LOCAL_MACHINE", "well-known root key to resolve paths against")
	rootCmd.PersistentFlags().
		IntVar(&debugLevel, "debug-level", 0, "trace dispatcher opcodes to stderr above level 1")
	rootCmd.PersistentFlags().
		IntVar(&saveVersion, "save-version", 0, "registry save format: 0 for v2, 1 for legacy v1")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
