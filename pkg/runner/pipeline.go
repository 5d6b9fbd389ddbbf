package runner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/yaklabco/syncasync/pkg/config"
	"github.com/yaklabco/syncasync/pkg/convert"
	"github.com/yaklabco/syncasync/pkg/fix"
	"github.com/yaklabco/syncasync/pkg/fsutil"
	"github.com/yaklabco/syncasync/pkg/langdetect"
	"github.com/yaklabco/syncasync/pkg/markdown"
	"github.com/yaklabco/syncasync/pkg/source"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupportedFile indicates a file that is neither Swift nor markdown.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrExtractFailure indicates markdown could not be processed.
	ErrExtractFailure = errors.New("extract failure")

	// ErrApplyFailure indicates generated edits could not be applied.
	ErrApplyFailure = errors.New("apply failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Action selects what the pipeline does with each file.
type Action int

const (
	// ActionScan reports declarations without generating code.
	ActionScan Action = iota

	// ActionConvert generates a counterpart for every declaration.
	ActionConvert
)

func (a Action) String() string {
	if a == ActionConvert {
		return "convert"
	}
	return "scan"
}

// FileKind is the kind of file a result came from.
type FileKind string

const (
	KindSwift    FileKind = "swift"
	KindMarkdown FileKind = "markdown"
)

// FileResult is the outcome of running the pipeline over one file.
type FileResult struct {
	*convert.Result

	Kind FileKind

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Blocks is the number of Swift blocks found in a markdown file.
	Blocks int

	// Modified is true when conversions changed the content.
	Modified bool

	// ModifiedContent is the converted content, nil when unmodified.
	ModifiedContent []byte

	// Diff is the unified diff of a modified file.
	Diff *fix.Diff

	// Skipped is true when a modified file was not written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a short human-readable state of the file.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.Written && fr.BackupCreated:
		return "converted (backup created)"
	case fr.Written:
		return "converted"
	case fr.Modified:
		return "changes pending"
	case fr.Result != nil && len(fr.Declarations) > 0:
		return fmt.Sprintf("%d declarations", len(fr.Declarations))
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	Action Action

	// Write persists converted content. Without it converted files are
	// only reported.
	Write bool

	// DryRun suppresses writing even when Write is set.
	DryRun bool

	// Backup creates a sidecar copy before a file is rewritten.
	Backup bool

	// Lines restricts conversion to declarations starting in the span.
	Lines *source.LineSpan
}

// Pipeline runs scanning and conversion over single files.
type Pipeline struct {
	generator *convert.Generator
	extractor *markdown.Extractor
	opts      PipelineOptions
}

// NewPipeline creates a pipeline. A nil extractor turns markdown files
// into errors.
func NewPipeline(gen *convert.Generator, extractor *markdown.Extractor, opts PipelineOptions) *Pipeline {
	return &Pipeline{generator: gen, extractor: extractor, opts: opts}
}

// NewPipelineFromConfig builds the generator, the markdown extractor and
// the options described by cfg.
func NewPipelineFromConfig(cfg *config.Config, action Action) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	mode, err := convert.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	gen := convert.NewGenerator(convert.Options{
		Mode:            mode,
		CompletionLabel: cfg.CompletionLabel,
		NameSuffix:      cfg.NameSuffix,
		Queue:           cfg.Queue,
		Indent:          cfg.Indent,
	})

	opts := PipelineOptions{
		Action: action,
		Write:  cfg.Write,
		DryRun: cfg.DryRun,
		Backup: cfg.BackupsEnabled(),
	}
	if cfg.Lines != "" {
		start, end, err := config.ParseLines(cfg.Lines)
		if err != nil {
			return nil, err
		}
		span := source.LineSpan{Start: start - 1, End: math.MaxInt}
		if end > 0 {
			span.End = end - 1
		}
		opts.Lines = &span
	}

	var extractor *markdown.Extractor
	if cfg.MarkdownEnabled() {
		mdOpts := []markdown.Option{markdown.WithUnlabeledDetection(cfg.DetectUnlabeled())}
		if cfg.Markdown.Flavor != "" {
			mdOpts = append(mdOpts, markdown.WithFlavor(cfg.Markdown.Flavor))
		}
		extractor = markdown.New(mdOpts...)
	}

	return NewPipeline(gen, extractor, opts), nil
}

// Options returns the pipeline options.
func (p *Pipeline) Options() PipelineOptions {
	return p.opts
}

// ProcessFile runs the pipeline for a single file.
//
// Swift files go through these steps:
//  1. Read and hash the original file.
//  2. Scan, and in convert mode generate and apply the counterparts.
//  3. Diff the modified content.
//  4. Stop unless writing was requested.
//  5. Check for concurrent modifications.
//  6. Create a backup (if enabled).
//  7. Write the modified content atomically.
//
// Markdown files stop after scanning their Swift blocks.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	switch {
	case langdetect.IsSwiftPath(path):
		return p.processSwift(ctx, path, content, info)
	case langdetect.IsMarkdownPath(path) && p.extractor != nil:
		return p.processMarkdown(ctx, path, content, info)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

func (p *Pipeline) converter() *convert.Converter {
	if p.opts.Lines != nil {
		return convert.NewConverter(p.generator, convert.WithLineSpan(*p.opts.Lines))
	}
	return convert.NewConverter(p.generator)
}

func (p *Pipeline) processSwift(
	ctx context.Context,
	path string,
	content []byte,
	info *fsutil.FileInfo,
) (*FileResult, error) {
	file := source.NewFile(path, content)
	result := &FileResult{Kind: KindSwift, OriginalInfo: info}

	if p.opts.Action == ActionScan {
		result.Result = p.converter().Find(file)
		return result, nil
	}

	result.Result = p.converter().Convert(file)
	if len(result.Conversions) == 0 {
		return result, nil
	}

	modified, err := result.Apply(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrApplyFailure, err)
	}
	result.Modified = true
	result.ModifiedContent = modified
	result.Diff = fix.GenerateDiff(path, content, modified)

	if !p.opts.Write || p.opts.DryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	changed, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if p.opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, modified, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// processMarkdown scans each Swift block and reports declarations and skips
// with document line numbers. Declaration ranges stay block-relative.
func (p *Pipeline) processMarkdown(
	ctx context.Context,
	path string,
	content []byte,
	info *fsutil.FileInfo,
) (*FileResult, error) {
	blocks, err := p.extractor.Extract(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailure, err)
	}

	result := &FileResult{
		Result:       &convert.Result{Path: path},
		Kind:         KindMarkdown,
		OriginalInfo: info,
		Blocks:       len(blocks),
	}

	conv := convert.NewConverter(p.generator)
	for _, block := range blocks {
		found := conv.Find(source.NewFile(path, block.Content))

		for _, decl := range found.Declarations {
			decl.StartLine += block.StartLine
			decl.EndLine += block.StartLine
			if p.inLines(decl.StartLine) {
				result.Declarations = append(result.Declarations, decl)
			}
		}
		for _, skip := range found.Skips {
			skip.Line += block.StartLine
			if p.inLines(skip.Line) {
				result.Skips = append(result.Skips, skip)
			}
		}
	}

	slices.SortStableFunc(result.Skips, func(a, b convert.Skip) int { return a.Line - b.Line })
	return result, nil
}

func (p *Pipeline) inLines(line int) bool {
	return p.opts.Lines == nil || p.opts.Lines.Contains(line)
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrExtractFailure) ||
		errors.Is(err, ErrApplyFailure) ||
		errors.Is(err, ErrWriteFailure)
}
