package runner

// FileOutcome pairs a discovered path with its pipeline result.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *FileResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int `json:"filesDiscovered" yaml:"files_discovered"`

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int `json:"filesProcessed" yaml:"files_processed"`

	// FilesSkipped counts modified files that were not written.
	FilesSkipped int `json:"filesSkipped" yaml:"files_skipped"`

	FilesErrored int `json:"filesErrored" yaml:"files_errored"`

	// FilesPending counts files with conversions that were not written.
	FilesPending int `json:"filesPending" yaml:"files_pending"`

	// FilesModified counts files written to disk.
	FilesModified int `json:"filesModified" yaml:"files_modified"`

	Declarations int `json:"declarations" yaml:"declarations"`
	Conversions  int `json:"conversions" yaml:"conversions"`

	// Skips counts declaration lines that were not scanned or converted.
	Skips int `json:"skips" yaml:"skips"`
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasPendingChanges reports whether conversions were generated but not
// written.
func (r *Result) HasPendingChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesPending > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	fr := outcome.Result
	if fr == nil {
		return
	}

	r.Stats.FilesProcessed++

	switch {
	case fr.Skipped:
		r.Stats.FilesSkipped++
	case fr.Written:
		r.Stats.FilesModified++
	case fr.Modified:
		r.Stats.FilesPending++
	}

	if fr.Result != nil {
		r.Stats.Declarations += len(fr.Declarations)
		r.Stats.Conversions += len(fr.Conversions)
		r.Stats.Skips += len(fr.Skips)
	}
}
