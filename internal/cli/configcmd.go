package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/internal/configloader"
	"github.com/yaklabco/syncasync/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Long: `Print the configuration that scan and convert would use here, after
merging config files and SYNCASYNC_* environment variables, followed by
the files it was loaded from.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the environment variables syncasync reads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			slices.Sort(names)

			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, vars[name])
			}
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, _, err := loadConfig(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	data, err := loadResult.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))
	for _, path := range loadResult.LoadedFrom {
		fmt.Fprintf(out, "# loaded from %s\n", path)
	}
	return nil
}
