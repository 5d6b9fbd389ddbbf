package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run settings.
	FieldMode     = "mode"
	FieldDryRun   = "dry_run"
	FieldWrite    = "write"
	FieldJobs     = "jobs"
	FieldMarkdown = "markdown"

	// Declarations.
	FieldLine   = "line"
	FieldName   = "name"
	FieldReason = "reason"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldDeclarations    = "declarations"
	FieldConversions     = "conversions"
	FieldSkipped         = "skipped"
	FieldBackup          = "backup"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
