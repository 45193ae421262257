package mdpreview

import (
	"strings"
	"sync"
	"unicode"
)

// Document holds the text being edited and the active preview style, and
// keeps a Generator rendering it, the way an editor window does.
//
// Empty text is not submitted: the preview keeps showing the last render.
type Document struct {
	gen     *Generator
	catalog *StyleCatalog

	mu       sync.Mutex
	text     string
	style    Style
	onStyles []func(Style)
}

// NewDocument wraps gen. catalog may be nil when styles are not switched.
func NewDocument(gen *Generator, catalog *StyleCatalog) *Document {
	return &Document{gen: gen, catalog: catalog}
}

// SetText stores text and submits it for rendering unless it is empty.
func (d *Document) SetText(text string) error {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()

	return d.submit(text)
}

// Text returns the current text.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// WordCount returns the number of whitespace-separated words that contain at
// least one letter or digit, so Markdown markers such as "#" or "-" are not
// counted.
func (d *Document) WordCount() int {
	n := 0
	for _, field := range strings.Fields(d.Text()) {
		if strings.IndexFunc(field, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SetStyle switches to the named catalog style: its code style goes to the
// generator, style handlers are notified and the text is re-rendered.
func (d *Document) SetStyle(name string) error {
	if d.catalog == nil {
		return ErrStyleNotFound
	}
	style, err := d.catalog.LookupStyle(name)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.style = style
	handlers := d.onStyles
	d.mu.Unlock()

	d.gen.SetCodeHighlightingStyle(style.CodeStyle)
	for _, h := range handlers {
		h(style)
	}
	return d.rerender()
}

// Style returns the active style. The zero Style means none was set.
func (d *Document) Style() Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.style
}

// OnStyleChanged registers fn to run, on the caller's goroutine, after every
// successful SetStyle.
func (d *Document) OnStyleChanged(fn func(Style)) {
	d.mu.Lock()
	d.onStyles = append(d.onStyles, fn)
	d.mu.Unlock()
}

// SetMathSupport toggles MathJax and re-renders.
func (d *Document) SetMathSupport(enabled bool) error {
	d.gen.SetMathSupportEnabled(enabled)
	return d.rerender()
}

// SetCodeHighlighting toggles syntax highlighting and re-renders.
func (d *Document) SetCodeHighlighting(enabled bool) error {
	d.gen.SetCodeHighlightingEnabled(enabled)
	return d.rerender()
}

// Generator returns the generator rendering this document.
func (d *Document) Generator() *Generator {
	return d.gen
}

// Close shuts the generator down. Results still queued are delivered first.
func (d *Document) Close() {
	d.gen.Shutdown()
}

func (d *Document) rerender() error {
	return d.submit(d.Text())
}

func (d *Document) submit(text string) error {
	if text == "" {
		return nil
	}
	return d.gen.Enqueue(text)
}
