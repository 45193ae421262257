package mdpreview

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Converter turns document text into a preview result.
// Implementations must be safe for use by one goroutine at a time and should
// not retain text after returning.
type Converter interface {
	Convert(ctx context.Context, text string, cfg WorkerConfig) (Result, error)
}

// MarkdownConverter is the default Converter: Goldmark with GFM, footnotes
// and heading ids, Chroma highlighting and an HTML page template.
type MarkdownConverter struct {
	engine    *pipeline.Engine
	sanitizer *pipeline.Sanitizer
	rewriter  pipeline.PathRewriter
	template  string
	rawHTML   bool
}

// ConverterOption configures a MarkdownConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	template    string
	hasTemplate bool
	assetPath   string
	sourceDir   string
	baseURL     string
	rawHTML     bool
}

// WithTemplate sets the page template. It may contain __HTML_HEADER__ and
// __HTML_CONTENT__; an empty template yields the bare HTML fragment.
func WithTemplate(tmpl string) ConverterOption {
	return func(c *converterConfig) {
		c.template = tmpl
		c.hasTemplate = true
	}
}

// WithAssetPath loads the preview template from a custom asset directory,
// falling back to the embedded template.
func WithAssetPath(path string) ConverterOption {
	return func(c *converterConfig) {
		c.assetPath = path
	}
}

// WithSourceDir resolves relative image and link paths against dir.
func WithSourceDir(dir string) ConverterOption {
	return func(c *converterConfig) {
		c.sourceDir = dir
	}
}

// WithBaseURL serves resolved relative paths under baseURL instead of as
// file:// URLs. Only meaningful together with WithSourceDir.
func WithBaseURL(baseURL string) ConverterOption {
	return func(c *converterConfig) {
		c.baseURL = baseURL
	}
}

// WithRawHTML passes raw HTML in the Markdown through to the output after
// sanitizing it.
func WithRawHTML(enabled bool) ConverterOption {
	return func(c *converterConfig) {
		c.rawHTML = enabled
	}
}

// NewMarkdownConverter creates a MarkdownConverter.
// Returns error if the preview template cannot be loaded.
func NewMarkdownConverter(opts ...ConverterOption) (*MarkdownConverter, error) {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	tmpl := cfg.template
	if !cfg.hasTemplate {
		loader, err := newAssetLoader(cfg.assetPath)
		if err != nil {
			return nil, err
		}
		tmpl, err = loader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
		}
	}

	c := &MarkdownConverter{
		engine:   pipeline.NewEngine(),
		rewriter: pipeline.PathRewriter{SourceDir: cfg.sourceDir, BaseURL: cfg.baseURL},
		template: tmpl,
		rawHTML:  cfg.rawHTML,
	}
	if cfg.rawHTML {
		c.sanitizer = pipeline.NewSanitizer()
	}
	return c, nil
}

// newAssetLoader returns the embedded loader, or a resolver over path.
func newAssetLoader(path string) (assets.AssetLoader, error) {
	if path == "" {
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}

// Convert renders text with cfg. The context is checked between stages; a
// stage that has started runs to completion.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *MarkdownConverter) Convert(ctx context.Context, text string, cfg WorkerConfig) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrConversionPanic, r)
		}
	}()

	md := pipeline.Preprocess(text)

	body, err := c.engine.ToHTML(ctx, md, pipeline.MarkdownOptions{
		Highlighting: cfg.CodeHighlighting,
		CodeStyle:    cfg.CodeHighlightingStyle,
		Unsafe:       c.rawHTML,
	})
	if err != nil {
		return Result{}, err
	}

	if c.sanitizer != nil {
		body = c.sanitizer.Sanitize(body)
	}
	body = pipeline.ConvertMarkPlaceholders(body)

	body, err = c.rewriter.Rewrite(body)
	if err != nil {
		return Result{}, fmt.Errorf("rewriting relative paths: %w", err)
	}

	header, err := pipeline.BuildHeader(pipeline.HeaderOptions{
		MathSupport:  cfg.MathSupport,
		Highlighting: cfg.CodeHighlighting,
		CodeStyle:    cfg.CodeHighlightingStyle,
	})
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	return Result{
		HTML: pipeline.RenderTemplate(c.template, header, body),
		TOC:  pipeline.BuildTOC(body),
	}, nil
}

var _ Converter = (*MarkdownConverter)(nil)
