// Package runner discovers Swift (and optionally markdown) files and runs
// the scan or convert pipeline over them with a worker pool.
package runner

// Options controls one run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors exclude patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, that
	// discovery accepts. Empty means DefaultExtensions.
	Extensions []string

	// ExcludeGlobs are doublestar patterns matched against paths relative to
	// WorkingDir. Patterns without a slash also match the base name.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs is the worker count. 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the Swift source extension.
func DefaultExtensions() []string {
	return []string{".swift"}
}

// MarkdownExtensions returns the extensions scanned when markdown support
// is enabled.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
