// Package config defines the syncasync configuration types. They are plain
// data; discovery, merging and validation live in internal/configloader.
package config

// Mode values mirror convert.Mode without importing it.
const (
	ModeCompletion = "completion"
	ModeAsync      = "async"
)

// OutputFormat selects the reporter.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatDiff OutputFormat = "diff"
)

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// MarkdownConfig controls scanning of Swift blocks inside markdown files.
type MarkdownConfig struct {
	// Enabled adds .md and .markdown files to discovery.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Flavor is "gfm" or "commonmark".
	Flavor string `yaml:"flavor,omitempty"`

	// DetectUnlabeled includes fences without an info string that look
	// like Swift.
	DetectUnlabeled *bool `yaml:"detect_unlabeled,omitempty"`
}

// BackupsConfig controls sidecar backups before files are rewritten.
type BackupsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config is the root configuration.
type Config struct {
	// Mode is "completion" or "async".
	Mode string `yaml:"mode,omitempty"`

	// CompletionLabel names the handler parameter in completion mode.
	CompletionLabel string `yaml:"completion_label,omitempty"`

	// NameSuffix is appended to generated function names.
	NameSuffix string `yaml:"name_suffix,omitempty"`

	// Queue is the dispatch queue expression for completion variants.
	Queue string `yaml:"queue,omitempty"`

	// Indent is one indentation level of generated bodies.
	Indent string `yaml:"indent,omitempty"`

	Markdown MarkdownConfig `yaml:"markdown,omitempty"`

	// Ignore holds doublestar patterns excluded from discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// CLI-level options, never read from or written to files.

	Format OutputFormat `yaml:"-"`
	Color  ColorMode    `yaml:"-"`
	Jobs   int          `yaml:"-"`
	DryRun bool         `yaml:"-"`
	Write  bool         `yaml:"-"`

	// Lines restricts conversion to declarations starting in "a:b"
	// (1-based, inclusive).
	Lines string `yaml:"-"`
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func deref(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// MarkdownEnabled reports whether markdown files are scanned.
func (c *Config) MarkdownEnabled() bool {
	return deref(c.Markdown.Enabled, false)
}

// DetectUnlabeled reports whether unlabeled fences are classified.
func (c *Config) DetectUnlabeled() bool {
	return deref(c.Markdown.DetectUnlabeled, false)
}

// BackupsEnabled reports whether files are backed up before writing.
func (c *Config) BackupsEnabled() bool {
	return deref(c.Backups.Enabled, true)
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		Mode:            ModeCompletion,
		CompletionLabel: "completion",
		Queue:           "DispatchQueue.global()",
		Indent:          "    ",
		Markdown: MarkdownConfig{
			Enabled:         Bool(false),
			Flavor:          "gfm",
			DetectUnlabeled: Bool(false),
		},
		Backups: BackupsConfig{Enabled: Bool(true)},
		Format:  FormatText,
		Color:   ColorAuto,
		Jobs:    0, // 0 means use GOMAXPROCS
	}
}
