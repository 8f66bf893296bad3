// Package main provides the entry point for the decomment CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/decomment/cmd/decomment/commands"
	"github.com/Sumatoshi-tech/decomment/pkg/version"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "decomment",
		Short: "Decomment - strip comments from source files",
		Long: `Decomment strips comments from source files while preserving code
semantics. Python files go through a syntax-tree pass that keeps
docstrings; every other language is handled by a pattern scanner driven
by an extensible per-extension rule table.

Commands:
  file      Strip comments from a single file
  dir       Strip comments from all files under a directory
  repo      Clone a git repository and strip comments from its files`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	// Add commands.
	rootCmd.AddCommand(commands.NewFileCommand())
	rootCmd.AddCommand(commands.NewDirCommand())
	rootCmd.AddCommand(commands.NewRepoCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "decomment %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
