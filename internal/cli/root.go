// Package cli provides the Cobra command structure for tsfix.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/tsfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root tsfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "tsfix",
		Short: "Batch-apply the missing-type-annotation code fix across a project",
		Long: `tsfix batch-applies the combined code fix for missing type annotations
on exported symbols across every source file in a project.

It loads the project configuration, asks an external fix provider for the
combined fix of each eligible file, applies the edits in memory, and - when
requested - writes the results to an output directory that mirrors the
project's layout. Without --write, tsfix is a dry run and only reports what
would change.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to tool config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
