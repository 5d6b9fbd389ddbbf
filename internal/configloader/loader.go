// Package configloader resolves the syncasync configuration: file
// discovery, layered merging, environment overrides and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/syncasync/pkg/config"
)

// ConfigFilePermissions is the mode of files written by WriteTemplate.
const ConfigFilePermissions = 0o644

// ProjectConfigName is the file "syncasync init" creates.
const ProjectConfigName = ".syncasync.yml"

// ErrConfigExists is returned by WriteTemplate when it declines to
// overwrite an existing file.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project search starts. Defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath comes from --config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv replaces os.Getenv for environment overrides.
	Getenv func(string) string

	// CLIConfig holds flag values; it has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load merges, lowest precedence first: defaults, system config, user
// config, project config, --config file, SYNCASYNC_* variables and CLI
// flags. The result is validated.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(merge(cfg, fileCfg), layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, opts.Getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Confirm asks a yes/no question and reports the answer.
type Confirm func(question string) (bool, error)

// WriteTemplate writes the commented default configuration to path. An
// existing file is replaced only when force is set or confirm agrees; a nil
// confirm declines.
func WriteTemplate(path string, force bool, confirm Confirm) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		ok := false
		if confirm != nil {
			ok, err = confirm(fmt.Sprintf("%s exists. Overwrite?", path))
			if err != nil {
				return err
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, config.TemplateBytes(), ConfigFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
