package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/pkg/config"
	"github.com/yaklabco/syncasync/pkg/runner"
)

const convertLongDescription = `Generate a counterpart for every function declaration.

In completion mode (the default) each synchronous function gets an overload
taking an @escaping completion handler that runs the original on a dispatch
queue. In async mode each function whose last parameter is a completion
handler gets an async overload built on a checked continuation.

Without --write the changes are printed as a unified diff and no file is
touched. Markdown files are never rewritten.

Examples:
  syncasync convert                         # Show the diff for the current directory
  syncasync convert --write                 # Apply it (backups are kept)
  syncasync convert --mode async API.swift  # Completion handlers to async
  syncasync convert --lines 12 --write Store.swift
  syncasync convert --check                 # Exit 2 when conversions are pending`

func newConvertCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Generate completion-handler or async variants",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, args, runner.ActionConvert, flags, config.FormatDiff)
		},
	}

	addCommonFlags(cmd, flags, string(config.FormatDiff))

	cmd.Flags().StringVar(&flags.mode, "mode", config.ModeCompletion, "conversion mode: completion, async")
	cmd.Flags().StringVar(&flags.completionLabel, "completion-label", "completion",
		"name of the completion handler parameter")
	cmd.Flags().StringVar(&flags.nameSuffix, "name-suffix", "", "suffix appended to generated function names")
	cmd.Flags().StringVar(&flags.queue, "queue", "DispatchQueue.global()", "dispatch queue for completion variants")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the converted files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "never write, even with --write")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not keep a backup of rewritten files")
	cmd.Flags().BoolVar(&flags.showGenerated, "show-generated", false, "print generated code in text output")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 2 when conversions are pending")

	return cmd
}
