package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/syncasync/pkg/config"
)

// EnvPrefix starts every environment variable read by LoadFromEnv.
const EnvPrefix = "SYNCASYNC_"

// envVar binds one environment variable to a config field.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(description string, set func(*config.Config, string)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func boolVar(description string, set func(*config.Config, bool)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"MODE": stringVar("Conversion mode: completion or async",
		func(c *config.Config, v string) { c.Mode = v }),
	"COMPLETION_LABEL": stringVar("Handler parameter name in completion mode",
		func(c *config.Config, v string) { c.CompletionLabel = v }),
	"NAME_SUFFIX": stringVar("Suffix appended to generated function names",
		func(c *config.Config, v string) { c.NameSuffix = v }),
	"QUEUE": stringVar("Dispatch queue expression for completion variants",
		func(c *config.Config, v string) { c.Queue = v }),
	"FORMAT": stringVar("Output format: text, json, yaml, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"COLOR": stringVar("Color output: auto, always, or never",
		func(c *config.Config, v string) { c.Color = config.ColorMode(v) }),
	"MARKDOWN_FLAVOR": stringVar("Markdown flavor: gfm or commonmark",
		func(c *config.Config, v string) { c.Markdown.Flavor = v }),
	"IGNORE": stringVar("Comma-separated ignore patterns",
		func(c *config.Config, v string) { c.Ignore = splitList(v) }),
	"MARKDOWN": boolVar("Scan Swift blocks in markdown files: true or false",
		func(c *config.Config, v bool) { c.Markdown.Enabled = config.Bool(v) }),
	"BACKUPS": boolVar("Back up files before rewriting: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = config.Bool(v) }),
	"DRY_RUN": boolVar("Report changes without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(c *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			c.Jobs = n
			return nil
		},
	},
}

// LoadFromEnv applies SYNCASYNC_* overrides read through getenv. A nil
// getenv reads the process environment.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, name := range sortedEnvNames() {
		value := getenv(EnvPrefix + name)
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for name, v := range envVars {
		out[EnvPrefix+name] = v.description
	}
	return out
}

func sortedEnvNames() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
