package mdpreview

import (
	"fmt"
	"io"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// StandaloneHTML returns r's page with style's CSS injected before </head>.
func StandaloneHTML(r Result, style Style) string {
	return pipeline.InjectCSS(r.HTML, style.CSS)
}

// ExportHTML writes r as a standalone HTML document styled with style.
func ExportHTML(w io.Writer, r Result, style Style) error {
	if _, err := io.WriteString(w, StandaloneHTML(r, style)); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

// TOCPage returns a standalone page showing a TOC fragment.
func TOCPage(toc string) string {
	return pipeline.TOCDocument(toc)
}
