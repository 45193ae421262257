package mdpreview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

func newTestConverter(t *testing.T, opts ...ConverterOption) *MarkdownConverter {
	t.Helper()
	conv, err := NewMarkdownConverter(opts...)
	if err != nil {
		t.Fatalf("NewMarkdownConverter() unexpected error: %v", err)
	}
	return conv
}

func TestMarkdownConverter_Convert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	tests := []struct {
		name        string
		text        string
		cfg         WorkerConfig
		contains    []string
		notContains []string
		tocContains []string
	}{
		{
			name:        "heading and toc",
			text:        "# Title\n\n## Part\n\nBody",
			cfg:         DefaultWorkerConfig(),
			contains:    []string{`<h1 id="title">Title</h1>`, `<h2 id="part">Part</h2>`, "<p>Body</p>"},
			tocContains: []string{`<a href="#title">Title</a>`, `<a href="#part">Part</a>`},
		},
		{
			name:     "highlight marks",
			text:     "some ==marked== text",
			cfg:      DefaultWorkerConfig(),
			contains: []string{"<mark>marked</mark>"},
		},
		{
			name:        "math support adds MathJax",
			text:        "$x$",
			cfg:         WorkerConfig{MathSupport: true},
			contains:    []string{"MathJax.js"},
			notContains: []string{"<style>"},
		},
		{
			name:        "math support off",
			text:        "$x$",
			cfg:         WorkerConfig{},
			notContains: []string{"MathJax.js"},
		},
		{
			name:     "code highlighting uses chroma classes",
			text:     "```go\nfunc main() {}\n```",
			cfg:      WorkerConfig{CodeHighlighting: true, CodeHighlightingStyle: "github"},
			contains: []string{`class="chroma"`, "<style>", ".chroma"},
		},
		{
			name:        "code highlighting off",
			text:        "```go\nfunc main() {}\n```",
			cfg:         WorkerConfig{},
			contains:    []string{`<code class="language-go">`},
			notContains: []string{`class="chroma"`},
		},
		{
			name:        "raw HTML escaped by default",
			text:        "<script>alert(1)</script>\n\ntext",
			cfg:         WorkerConfig{},
			notContains: []string{"<script>alert"},
		},
		{
			name:     "gfm table",
			text:     "| a | b |\n|---|---|\n| 1 | 2 |",
			cfg:      WorkerConfig{},
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := conv.Convert(context.Background(), tt.text, tt.cfg)
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(res.HTML, want) {
					t.Errorf("HTML missing %q", want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(res.HTML, unwanted) {
					t.Errorf("HTML unexpectedly contains %q", unwanted)
				}
			}
			for _, want := range tt.tocContains {
				if !strings.Contains(res.TOC, want) {
					t.Errorf("TOC missing %q: %q", want, res.TOC)
				}
			}
			for _, p := range []string{pipeline.HeaderPlaceholder, pipeline.ContentPlaceholder} {
				if strings.Contains(res.HTML, p) {
					t.Errorf("HTML still contains placeholder %s", p)
				}
			}
		})
	}
}

func TestMarkdownConverter_EmptyTemplateYieldsFragment(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithTemplate(""))
	res, err := conv.Convert(context.Background(), "plain", WorkerConfig{MathSupport: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.HTML != "<p>plain</p>\n" {
		t.Errorf("HTML = %q, want bare fragment", res.HTML)
	}
	if res.TOC != "" {
		t.Errorf("TOC = %q, want empty", res.TOC)
	}
}

func TestMarkdownConverter_RawHTMLSanitized(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithTemplate(""), WithRawHTML(true))
	res, err := conv.Convert(context.Background(),
		"<div class=\"note\">kept</div>\n\n<script>alert(1)</script>\n\n<a href=\"#x\" onclick=\"evil()\">link</a>",
		WorkerConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.HTML, `<div class="note">kept</div>`) {
		t.Errorf("raw div dropped: %s", res.HTML)
	}
	if strings.Contains(res.HTML, "<script") || strings.Contains(res.HTML, "onclick") {
		t.Errorf("unsafe markup kept: %s", res.HTML)
	}
}

func TestMarkdownConverter_RewritesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("file URLs", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithTemplate(""), WithSourceDir(dir))
		res, err := conv.Convert(context.Background(), "![img](pic.png)", WorkerConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(res.HTML, "file://") || !strings.Contains(res.HTML, "pic.png") {
			t.Errorf("image not rewritten to file URL: %s", res.HTML)
		}
	})

	t.Run("base URL", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithTemplate(""), WithSourceDir(dir), WithBaseURL("/files/"))
		res, err := conv.Convert(context.Background(), "![img](img/pic.png)", WorkerConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(res.HTML, `src="/files/img/pic.png"`) {
			t.Errorf("image not rewritten under base URL: %s", res.HTML)
		}
	})
}

func TestMarkdownConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, "# x", DefaultWorkerConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestMarkdownConverter_UnknownCodeStyleFallsBack(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithTemplate(""))
	_, err := conv.Convert(context.Background(), "```go\nx := 1\n```",
		WorkerConfig{CodeHighlighting: true, CodeHighlightingStyle: "no-such-style"})
	if err != nil {
		t.Errorf("Convert() with unknown style error = %v, want nil", err)
	}
}

func TestNewMarkdownConverter_AssetPath(t *testing.T) {
	t.Parallel()

	t.Run("custom template", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
			t.Fatal(err)
		}
		tmpl := "<main>__HTML_CONTENT__</main>"
		if err := os.WriteFile(filepath.Join(dir, "templates", "preview.html"), []byte(tmpl), 0o600); err != nil {
			t.Fatal(err)
		}

		conv := newTestConverter(t, WithAssetPath(dir))
		res, err := conv.Convert(context.Background(), "hi", WorkerConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if res.HTML != "<main><p>hi</p>\n</main>" {
			t.Errorf("HTML = %q, want custom template", res.HTML)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewMarkdownConverter(WithAssetPath(filepath.Join(t.TempDir(), "nope")))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})
}
