package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/internal/logging"
	"github.com/yaklabco/syncasync/pkg/config"
	"github.com/yaklabco/syncasync/pkg/fsutil"
	"github.com/yaklabco/syncasync/pkg/runner"
)

const restoreLongDescription = `Undo "convert --write" using the backups it kept.

Every Swift file under the given paths that has a ` + fsutil.BackupSuffix + ` sidecar
is overwritten with the backup, and the backup is removed. Files without a
backup are left alone.

Examples:
  syncasync restore                 # Restore everything below the current directory
  syncasync restore --keep Sources  # Restore but keep the backups
  syncasync restore --clean         # Accept the conversions and delete the backups`

type restoreFlags struct {
	keep   bool
	clean  bool
	ignore []string
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore converted files from their backups",
		Long:  restoreLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.keep, "keep", false, "keep backups after restoring")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "delete backups without restoring")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "doublestar glob patterns to ignore")
	cmd.MarkFlagsMutuallyExclusive("keep", "clean")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, flags *restoreFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()

	cli := &config.Config{}
	if cmd.Flags().Changed("ignore") {
		cli.Ignore = flags.ignore
	}
	loadResult, workDir, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: loadResult.Config.Ignore,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	out := cmd.OutOrStdout()
	var restored, removed, failed int
	for _, path := range files {
		name := path
		if rel, relErr := filepath.Rel(workDir, path); relErr == nil {
			name = filepath.ToSlash(rel)
		}

		if !flags.clean {
			ok, err := fsutil.RestoreBackup(ctx, path)
			if err != nil {
				logger.Error("restore failed", logging.FieldPath, path, logging.FieldError, err)
				failed++
				continue
			}
			if !ok {
				continue
			}
			restored++
			fmt.Fprintf(out, "restored %s\n", name)
			if flags.keep {
				continue
			}
		}

		ok, err := fsutil.RemoveBackup(path)
		if err != nil {
			logger.Error("remove backup failed", logging.FieldPath, path, logging.FieldError, err)
			failed++
			continue
		}
		if ok {
			removed++
			logger.Debug("backup removed", logging.FieldBackup, fsutil.BackupPath(path))
			if flags.clean {
				fmt.Fprintf(out, "removed %s\n", name+fsutil.BackupSuffix)
			}
		}
	}

	fmt.Fprintf(out, "%d restored, %d backups removed\n", restored, removed)
	if failed > 0 {
		return fmt.Errorf("%w: %d files", ErrFilesFailed, failed)
	}
	return nil
}
