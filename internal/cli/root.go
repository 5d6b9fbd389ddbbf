// Package cli provides the Cobra command structure for syncasync.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root syncasync command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "syncasync",
		Short: "Generate completion-handler and async variants of Swift functions",
		Long: `syncasync scans Swift sources for function declarations and generates
their counterparts: a completion-handler variant of a synchronous function,
or an async/await variant of a function that takes a completion handler.

Generated code is inserted after the original declaration. Files are only
rewritten with --write; otherwise the changes are printed as a diff.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       info.Version,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-config", false, "ignore discovered config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
