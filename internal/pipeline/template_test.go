package pipeline

import (
	"strings"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    string
		header  string
		content string
		want    string
	}{
		{
			name:    "empty template returns content",
			tmpl:    "",
			header:  "<script></script>",
			content: "<p>x</p>",
			want:    "<p>x</p>",
		},
		{
			name:    "both placeholders replaced",
			tmpl:    "<head>__HTML_HEADER__</head><body>__HTML_CONTENT__</body>",
			header:  "<style></style>",
			content: "<p>x</p>",
			want:    "<head><style></style></head><body><p>x</p></body>",
		},
		{
			name:    "content containing placeholder text is not re-expanded",
			tmpl:    "<body>__HTML_CONTENT__</body>",
			content: "__HTML_HEADER__",
			header:  "H",
			want:    "<body>__HTML_HEADER__</body>",
		},
		{
			name:    "template without placeholders",
			tmpl:    "<p>static</p>",
			content: "ignored",
			want:    "<p>static</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RenderTemplate(tt.tmpl, tt.header, tt.content); got != tt.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildHeader(t *testing.T) {
	t.Parallel()

	t.Run("nothing enabled", func(t *testing.T) {
		t.Parallel()

		got, err := BuildHeader(HeaderOptions{})
		if err != nil {
			t.Fatalf("BuildHeader() error = %v", err)
		}
		if got != "" {
			t.Errorf("BuildHeader() = %q, want empty", got)
		}
	})

	t.Run("math support adds MathJax", func(t *testing.T) {
		t.Parallel()

		got, err := BuildHeader(HeaderOptions{MathSupport: true})
		if err != nil {
			t.Fatalf("BuildHeader() error = %v", err)
		}
		if !strings.Contains(got, "MathJax.js") {
			t.Errorf("BuildHeader() = %q, want MathJax script", got)
		}
	})

	t.Run("highlighting adds chroma CSS", func(t *testing.T) {
		t.Parallel()

		got, err := BuildHeader(HeaderOptions{Highlighting: true, CodeStyle: "github"})
		if err != nil {
			t.Fatalf("BuildHeader() error = %v", err)
		}
		if !strings.HasPrefix(got, "<style>") || !strings.Contains(got, ".chroma") {
			t.Errorf("BuildHeader() = %q, want chroma style block", got)
		}
		if strings.Contains(got, "MathJax") {
			t.Error("BuildHeader() included MathJax without math support")
		}
	})
}

func TestHighlightCSS_UnknownStyleFallsBack(t *testing.T) {
	t.Parallel()

	got, err := HighlightCSS("no-such-style")
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(got, ".chroma") {
		t.Errorf("HighlightCSS() = %q, want fallback CSS", got)
	}
}

func TestCodeStyleExists(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"github", "friendly", "solarized-dark", "solarized-light"} {
		if !CodeStyleExists(name) {
			t.Errorf("CodeStyleExists(%q) = false, want true", name)
		}
	}
	if CodeStyleExists("no-such-style") {
		t.Error("CodeStyleExists(no-such-style) = true, want false")
	}
	if len(CodeStyleNames()) == 0 {
		t.Error("CodeStyleNames() is empty")
	}
}

func TestTOCDocument(t *testing.T) {
	t.Parallel()

	toc := "<ul>\n<li><a href=\"#a\">A</a></li>\n</ul>\n"
	got := TOCDocument(toc)

	if !strings.Contains(got, toc) {
		t.Errorf("TOCDocument() missing fragment: %q", got)
	}
	if !strings.Contains(got, "list-style-type: none") {
		t.Error("TOCDocument() missing list style")
	}
	if strings.Contains(got, ContentPlaceholder) {
		t.Error("TOCDocument() left the content placeholder")
	}
}
