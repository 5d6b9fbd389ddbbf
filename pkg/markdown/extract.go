// Package markdown pulls Swift code blocks out of markdown documents so
// declarations inside documentation can be scanned.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/syncasync/pkg/langdetect"
	"github.com/yaklabco/syncasync/pkg/source"
)

// Flavors accepted by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Block is one Swift code block.
type Block struct {
	// Info is the raw fence info string.
	Info string
	// Content is the block body without fences, one newline per line.
	Content []byte
	// StartLine is the 0-based document line of the first body line.
	StartLine int
}

// Extractor finds Swift blocks with goldmark.
type Extractor struct {
	md              goldmark.Markdown
	detectUnlabeled bool
}

// Option configures an Extractor.
type Option func(*extractorOptions)

type extractorOptions struct {
	flavor          string
	detectUnlabeled bool
}

// WithFlavor selects the markdown flavor. Unknown values fall back to
// CommonMark.
func WithFlavor(flavor string) Option {
	return func(o *extractorOptions) { o.flavor = flavor }
}

// WithUnlabeledDetection includes fences with no info string whose content
// looks like Swift.
func WithUnlabeledDetection(enabled bool) Option {
	return func(o *extractorOptions) { o.detectUnlabeled = enabled }
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	o := extractorOptions{flavor: FlavorGFM}
	for _, opt := range opts {
		opt(&o)
	}

	var gmOpts []goldmark.Option
	if o.flavor == FlavorGFM {
		gmOpts = append(gmOpts, goldmark.WithExtensions(extension.GFM))
	}

	return &Extractor{
		md:              goldmark.New(gmOpts...),
		detectUnlabeled: o.detectUnlabeled,
	}
}

// Extract returns the Swift blocks of content in document order.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	file := source.NewFile("", content)

	var blocks []Block
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block, ok := e.blockFor(fenced, content, file)
		if ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}

func (e *Extractor) blockFor(fenced *ast.FencedCodeBlock, content []byte, file *source.File) (Block, bool) {
	segments := fenced.Lines()
	if segments.Len() == 0 {
		return Block{}, false
	}

	var body bytes.Buffer
	for i := range segments.Len() {
		seg := segments.At(i)
		body.Write(seg.Value(content))
	}

	info := ""
	if fenced.Info != nil {
		info = string(fenced.Info.Value(content))
	}

	switch {
	case langdetect.IsSwiftFence(info):
	case info == "" && e.detectUnlabeled && langdetect.LooksLikeSwift(body.Bytes()):
	default:
		return Block{}, false
	}

	line, _ := file.LineAt(segments.At(0).Start)
	return Block{
		Info:      info,
		Content:   body.Bytes(),
		StartLine: line - 1,
	}, true
}
