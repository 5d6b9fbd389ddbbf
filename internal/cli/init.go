package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/internal/configloader"
	"github.com/yaklabco/syncasync/internal/logging"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a syncasync configuration file",
		Long: `Create a commented .syncasync.yml in the current directory with the
default settings. An existing file is only replaced with --force, or after
confirmation when running in a terminal.

Examples:
  syncasync init                      Create .syncasync.yml
  syncasync init --force              Replace an existing file
  syncasync init --output ci.yml      Write to a custom path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var confirm configloader.Confirm
			if configloader.IsInteractive() {
				confirm = promptConfirm(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			return runInit(flags, confirm)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(flags *initFlags, confirm configloader.Confirm) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := configloader.WriteTemplate(absPath, flags.force, confirm); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'syncasync config env' to see the environment overrides")

	return nil
}

// promptConfirm asks on out and reads a y/N answer from in.
func promptConfirm(in io.Reader, out io.Writer) configloader.Confirm {
	reader := bufio.NewReader(in)
	return func(question string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", question)
		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
