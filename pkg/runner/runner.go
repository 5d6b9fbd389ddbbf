package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/syncasync/internal/logging"
)

// Runner processes many files through one Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in path order whatever order the workers finish in.
// A cancelled context returns the outcomes collected so far with an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	type work struct {
		index int
		path  string
	}
	type done struct {
		index   int
		outcome FileOutcome
	}

	workCh := make(chan work)
	outCh := make(chan done)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				outcome := r.process(ctx, item.path)
				select {
				case <-ctx.Done():
					return
				case outCh <- done{index: item.index, outcome: outcome}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- work{index: i, path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*FileOutcome, len(files))
	for d := range outCh {
		outcome := d.outcome
		outcomes[d.index] = &outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDeclarations, result.Stats.Declarations,
		logging.FieldConversions, result.Stats.Conversions,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) process(ctx context.Context, path string) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	fr, err := r.Pipeline.ProcessFile(ctx, path)
	if err != nil {
		logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	for _, skip := range fr.Skips {
		logger.Debug("declaration skipped",
			logging.FieldPath, path,
			logging.FieldLine, skip.Line+1,
			logging.FieldName, skip.Name,
			logging.FieldReason, skip.Reason,
		)
	}
	outcome.Result = fr
	return outcome
}
