package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Template placeholders replaced by RenderTemplate.
const (
	HeaderPlaceholder  = "__HTML_HEADER__"
	ContentPlaceholder = "__HTML_CONTENT__"
)

// MathJaxScript loads MathJax for TeX and MathML rendering in the preview.
const MathJaxScript = `<script type="text/javascript" src="https://cdn.jsdelivr.net/npm/mathjax@2/MathJax.js?config=TeX-AMS-MML_HTMLorMML"></script>`

// ErrHighlightCSS indicates the highlighting stylesheet could not be written.
var ErrHighlightCSS = errors.New("highlighting CSS generation failed")

// HeaderOptions selects what BuildHeader emits.
type HeaderOptions struct {
	MathSupport  bool
	Highlighting bool
	CodeStyle    string
}

// highlightCSSCache maps a Chroma style name to its generated CSS.
var highlightCSSCache sync.Map

// BuildHeader returns the markup placed in the template's header slot.
func BuildHeader(opts HeaderOptions) (string, error) {
	var header strings.Builder

	if opts.MathSupport {
		header.WriteString(MathJaxScript)
	}

	if opts.Highlighting {
		css, err := HighlightCSS(opts.CodeStyle)
		if err != nil {
			return "", err
		}
		header.WriteString("<style>")
		header.WriteString(sanitizeCSS(css))
		header.WriteString("</style>")
	}

	return header.String(), nil
}

// HighlightCSS returns the class-based stylesheet for a Chroma style.
// Unknown names resolve to Chroma's fallback style.
func HighlightCSS(styleName string) (string, error) {
	if cached, ok := highlightCSSCache.Load(styleName); ok {
		return cached.(string), nil
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightCSS, err)
	}

	css := buf.String()
	highlightCSSCache.Store(styleName, css)
	return css, nil
}

// CodeStyleExists reports whether Chroma registers a style under name.
func CodeStyleExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// CodeStyleNames lists the registered Chroma style names, sorted.
func CodeStyleNames() []string {
	return styles.Names()
}

// RenderTemplate substitutes header and content into tmpl.
// An empty template yields the content unchanged.
func RenderTemplate(tmpl, header, content string) string {
	if tmpl == "" {
		return content
	}

	return strings.NewReplacer(
		HeaderPlaceholder, header,
		ContentPlaceholder, content,
	).Replace(tmpl)
}

// tocDocumentTemplate wraps a TOC fragment in a page with a flat list style.
const tocDocumentTemplate = `<html><head>
<style type="text/css">ul { list-style-type: none; padding: 0; margin-left: 1em; } a { text-decoration: none; }</style>
</head><body>` + ContentPlaceholder + `</body></html>`

// TOCDocument returns a standalone page showing the TOC fragment.
func TOCDocument(toc string) string {
	return RenderTemplate(tocDocumentTemplate, "", toc)
}
