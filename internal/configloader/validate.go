package configloader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/syncasync/pkg/config"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	// Field is the YAML path of the field, e.g. "markdown.flavor".
	Field string

	Value any

	Message string

	// FilePath is the config file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult holds every finding of Validate.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

var (
	swiftIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	identifierTail  = regexp.MustCompile(`^[A-Za-z0-9_]*$`)
)

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatYAML: true,
	config.FormatDiff: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a merged configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch cfg.Mode {
	case config.ModeCompletion, config.ModeAsync:
	default:
		result.fail("mode", cfg.Mode, "invalid mode %q; must be one of: completion, async", cfg.Mode)
	}

	if !swiftIdentifier.MatchString(cfg.CompletionLabel) {
		result.fail("completion_label", cfg.CompletionLabel, "%q is not a Swift identifier", cfg.CompletionLabel)
	}
	if !identifierTail.MatchString(cfg.NameSuffix) {
		result.fail("name_suffix", cfg.NameSuffix, "%q may only contain letters, digits and underscores", cfg.NameSuffix)
	}
	if strings.TrimSpace(cfg.Queue) == "" {
		result.fail("queue", cfg.Queue, "queue must not be empty")
	}
	if cfg.Indent == "" || strings.Trim(cfg.Indent, " \t") != "" {
		result.fail("indent", cfg.Indent, "indent must be one or more spaces or tabs")
	}

	switch cfg.Markdown.Flavor {
	case "", "gfm", "commonmark":
	default:
		result.fail("markdown.flavor", cfg.Markdown.Flavor, "invalid flavor %q; must be one of: gfm, commonmark", cfg.Markdown.Flavor)
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, yaml, diff", cfg.Format)
	}
	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Lines != "" {
		if _, _, err := config.ParseLines(cfg.Lines); err != nil {
			result.fail("lines", cfg.Lines, "%v", err)
		}
	}

	if cfg.Mode == config.ModeCompletion && cfg.NameSuffix == "Async" {
		result.warn("name_suffix", cfg.NameSuffix, "suffix %q on completion-handler variants is misleading", cfg.NameSuffix)
	}
	if cfg.DryRun && cfg.Write {
		result.warn("dry_run", cfg.DryRun, "dry run takes precedence over write")
	}

	return result
}

// ValidateWithFile validates cfg and records filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
