package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// MarkdownOptions selects how a Goldmark engine is configured.
// It is comparable and used as the engine cache key.
type MarkdownOptions struct {
	Highlighting bool   // Chroma syntax highlighting of fenced code
	CodeStyle    string // Chroma style name, only meaningful with Highlighting
	Unsafe       bool   // pass raw HTML through (output must be sanitized)
}

// Engine converts Markdown fragments with Goldmark, keeping one configured
// instance per MarkdownOptions value.
type Engine struct {
	mu      sync.Mutex
	engines map[MarkdownOptions]goldmark.Markdown
}

// NewEngine creates an Engine with an empty cache.
func NewEngine() *Engine {
	return &Engine{engines: make(map[MarkdownOptions]goldmark.Markdown)}
}

// ToHTML converts Markdown to an HTML fragment.
// The context is checked before and after conversion; a conversion that has
// started always runs to completion.
func (e *Engine) ToHTML(ctx context.Context, content string, opts MarkdownOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := e.engine(opts)

	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// engine returns the cached Goldmark instance for opts, building it on first use.
func (e *Engine) engine(opts MarkdownOptions) goldmark.Markdown {
	if opts.Highlighting {
		// Unknown names render with the fallback style; share its instance.
		opts.CodeStyle = styles.Get(opts.CodeStyle).Name
	} else {
		opts.CodeStyle = ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if md, ok := e.engines[opts]; ok {
		return md
	}
	md := newGoldmark(opts)
	e.engines[opts] = md
	return md
}

// newGoldmark builds a Goldmark instance with GFM, footnotes and heading IDs.
func newGoldmark(opts MarkdownOptions) goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if opts.Highlighting {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.CodeStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // colors come from the CSS written by BuildHeader
			),
		))
	}

	rendererOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // required for TOC anchors
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}
