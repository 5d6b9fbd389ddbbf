package config

// Template is the commented configuration written by "syncasync init".
const Template = `# syncasync configuration
# See: https://github.com/yaklabco/syncasync

# Conversion direction:
#   completion  add a completion-handler variant of synchronous functions
#   async       add an async variant of completion-handler functions
mode: completion

# Name of the handler parameter added in completion mode.
completion_label: completion

# Suffix appended to generated function names.
# name_suffix: ""

# Dispatch queue the completion variant runs on.
queue: DispatchQueue.global()

# One level of indentation in generated bodies.
indent: "    "

# Scan Swift code blocks in markdown files (reported, never rewritten).
markdown:
  enabled: false
  flavor: gfm
  detect_unlabeled: false

# File patterns to skip (doublestar globs).
# ignore:
#   - "**/Generated/**"
#   - ".build/**"

# Keep a .syncasync.bak copy of every rewritten file.
backups:
  enabled: true
`

// TemplateBytes returns Template as bytes.
func TemplateBytes() []byte {
	return []byte(Template)
}
