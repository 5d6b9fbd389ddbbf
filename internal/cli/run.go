package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syncasync/internal/configloader"
	"github.com/yaklabco/syncasync/internal/logging"
	"github.com/yaklabco/syncasync/pkg/config"
	"github.com/yaklabco/syncasync/pkg/reporter"
	"github.com/yaklabco/syncasync/pkg/runner"
)

// runFlags are the flags shared by scan and convert. Flags that only one
// command registers stay at their zero value in the other.
type runFlags struct {
	format          string
	jobs            int
	ignore          []string
	lines           string
	markdown        bool
	flavor          string
	detectUnlabeled bool
	compact         bool

	mode            string
	completionLabel string
	nameSuffix      string
	queue           string
	write           bool
	dryRun          bool
	noBackups       bool
	showGenerated   bool
	check           bool
}

func addCommonFlags(cmd *cobra.Command, flags *runFlags, defaultFormat string) {
	cmd.Flags().StringVar(&flags.format, "format", defaultFormat, "output format: text, json, yaml, diff")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "doublestar glob patterns to ignore")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "only declarations starting in this 1-based range (a:b, a:, a)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also scan Swift blocks in .md and .markdown files")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "markdown flavor: gfm, commonmark")
	cmd.Flags().BoolVar(&flags.detectUnlabeled, "detect-unlabeled", false,
		"treat unlabeled markdown fences that look like Swift as Swift")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
}

// cliConfig returns a Config holding only the flags set on the command
// line, so that unset flags do not mask config files or the environment.
func cliConfig(cmd *cobra.Command, flags *runFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("lines") {
		cfg.Lines = flags.lines
	}
	if changed("markdown") {
		cfg.Markdown.Enabled = config.Bool(flags.markdown)
	}
	if changed("flavor") {
		cfg.Markdown.Flavor = flags.flavor
	}
	if changed("detect-unlabeled") {
		cfg.Markdown.DetectUnlabeled = config.Bool(flags.detectUnlabeled)
	}
	if changed("mode") {
		cfg.Mode = flags.mode
	}
	if changed("completion-label") {
		cfg.CompletionLabel = flags.completionLabel
	}
	if changed("name-suffix") {
		cfg.NameSuffix = flags.nameSuffix
	}
	if changed("queue") {
		cfg.Queue = flags.queue
	}
	if changed("no-backups") && flags.noBackups {
		cfg.Backups.Enabled = config.Bool(false)
	}
	if color, err := cmd.Flags().GetString("color"); err == nil && changed("color") {
		cfg.Color = config.ColorMode(color)
	}

	cfg.Write = flags.write
	cfg.DryRun = flags.dryRun
	return cfg
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(ctx context.Context, cmd *cobra.Command, cli *config.Config) (*configloader.LoadResult, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, "", fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cli,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return loadResult, workDir, nil
}

func runCommand(cmd *cobra.Command, args []string, action runner.Action, flags *runFlags, defaultFormat config.OutputFormat) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cli := cliConfig(cmd, flags)
	if cli.Format == "" && os.Getenv(configloader.EnvPrefix+"FORMAT") == "" {
		cli.Format = defaultFormat
	}

	loadResult, workDir, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldMode, cfg.Mode,
		logging.FieldWrite, cfg.Write,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMarkdown, cfg.MarkdownEnabled(),
	)

	pipeline, err := runner.NewPipelineFromConfig(cfg, action)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	extensions := runner.DefaultExtensions()
	if cfg.MarkdownEnabled() {
		extensions = append(extensions, runner.MarkdownExtensions()...)
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(fmt.Errorf("%s failed", action), err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		Format:        format,
		Color:         string(cfg.Color),
		ShowSummary:   true,
		ShowGenerated: flags.showGenerated,
		Compact:       flags.compact,
		WorkingDir:    workDir,
		Version:       cmd.Root().Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.check) {
	case ExitFilesFailed:
		return ErrFilesFailed
	case ExitPending:
		return ErrPending
	default:
		return nil
	}
}
