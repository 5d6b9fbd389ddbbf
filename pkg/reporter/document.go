package reporter

import (
	"github.com/yaklabco/syncasync/pkg/runner"
	"github.com/yaklabco/syncasync/pkg/swiftparam"
)

// Document is the structured form of a run shared by JSON and YAML output.
type Document struct {
	Version string       `json:"version" yaml:"version"`
	Files   []FileReport `json:"files" yaml:"files"`
	Summary runner.Stats `json:"summary" yaml:"summary"`
}

// FileReport is one file of a Document.
type FileReport struct {
	Path          string              `json:"path" yaml:"path"`
	Kind          string              `json:"kind,omitempty" yaml:"kind,omitempty"`
	Status        string              `json:"status" yaml:"status"`
	Declarations  []DeclarationReport `json:"declarations" yaml:"declarations"`
	Conversions   []ConversionReport  `json:"conversions,omitempty" yaml:"conversions,omitempty"`
	Skips         []SkipReport        `json:"skips,omitempty" yaml:"skips,omitempty"`
	Written       bool                `json:"written,omitempty" yaml:"written,omitempty"`
	BackupCreated bool                `json:"backupCreated,omitempty" yaml:"backup_created,omitempty"`
	Error         string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// DeclarationReport describes a declaration. Lines are 1-based.
type DeclarationReport struct {
	Name           string                 `json:"name" yaml:"name"`
	Attributes     string                 `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Signature      string                 `json:"signature" yaml:"signature"`
	Parameters     []swiftparam.Parameter `json:"parameters" yaml:"parameters"`
	PostAttributes string                 `json:"postAttributes,omitempty" yaml:"post_attributes,omitempty"`
	StartLine      int                    `json:"startLine" yaml:"start_line"`
	EndLine        int                    `json:"endLine" yaml:"end_line"`
}

// ConversionReport is a generated counterpart.
type ConversionReport struct {
	Name      string `json:"name" yaml:"name"`
	Line      int    `json:"line" yaml:"line"`
	Generated string `json:"generated" yaml:"generated"`
}

// SkipReport is a declaration line that was not handled.
type SkipReport struct {
	Name   string `json:"name" yaml:"name"`
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

// BuildDocument converts result into a Document.
func BuildDocument(result *runner.Result, opts Options) *Document {
	doc := &Document{Version: opts.Version, Files: make([]FileReport, 0)}
	if result == nil {
		return doc
	}
	doc.Summary = result.Stats

	for _, file := range result.Files {
		report := FileReport{
			Path:         displayPath(file.Path, opts.WorkingDir),
			Declarations: make([]DeclarationReport, 0),
		}

		if file.Error != nil {
			report.Status = "error"
			report.Error = file.Error.Error()
			doc.Files = append(doc.Files, report)
			continue
		}

		fr := file.Result
		if fr == nil {
			continue
		}

		report.Kind = string(fr.Kind)
		report.Status = fr.Summary()
		report.Written = fr.Written
		report.BackupCreated = fr.BackupCreated

		if fr.Result != nil {
			for _, decl := range fr.Declarations {
				params := decl.Parameters
				if params == nil {
					params = make([]swiftparam.Parameter, 0)
				}
				report.Declarations = append(report.Declarations, DeclarationReport{
					Name:           decl.Name,
					Attributes:     decl.Attributes,
					Signature:      decl.Signature(),
					Parameters:     params,
					PostAttributes: decl.PostAttributes,
					StartLine:      decl.StartLine + 1,
					EndLine:        decl.EndLine + 1,
				})
			}
			for _, conv := range fr.Conversions {
				report.Conversions = append(report.Conversions, ConversionReport{
					Name:      conv.Declaration.Name,
					Line:      conv.Declaration.StartLine + 1,
					Generated: conv.Generated,
				})
			}
			for _, skip := range fr.Skips {
				report.Skips = append(report.Skips, SkipReport{
					Name:   skip.Name,
					Line:   skip.Line + 1,
					Reason: skip.Reason,
				})
			}
		}

		doc.Files = append(doc.Files, report)
	}

	return doc
}
