package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/pkg/config"
	"github.com/yaklabco/syncasync/pkg/runner"
)

const scanLongDescription = `Report the function declarations found in Swift files.

By default, scans all .swift files in the current directory and its
subdirectories. With --markdown, Swift code blocks in .md and .markdown
files are scanned too and reported with their line in the document.

Examples:
  syncasync scan                        # Scan current directory
  syncasync scan Sources/               # Scan one directory
  syncasync scan --lines 10:40 API.swift
  syncasync scan --markdown docs/       # Include markdown code blocks
  syncasync scan --format json          # Output as JSON`

func newScanCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List function declarations in Swift files",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, args, runner.ActionScan, flags, config.FormatText)
		},
	}

	addCommonFlags(cmd, flags, string(config.FormatText))

	return cmd
}
