package cli

import (
	"errors"

	"github.com/yaklabco/syncasync/pkg/runner"
)

// Exit codes for syncasync.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFilesFailed indicates at least one file could not be processed.
	ExitFilesFailed = 1

	// ExitPending indicates --check found conversions that were not written.
	ExitPending = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFilesFailed signals ExitFilesFailed; the reporter already printed
	// the failures.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrPending signals ExitPending.
	ErrPending = errors.New("conversions pending")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a run. With check set,
// pending conversions are a failure.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitFilesFailed
	case check && result.HasPendingChanges():
		return ExitPending
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrPending):
		return ExitPending
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, runner.ErrFileNotFound), errors.Is(err, runner.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit code and needs no log
// line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrPending)
}
