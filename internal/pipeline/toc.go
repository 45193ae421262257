package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int    // 1-6
	ID    string // anchor ID
	Text  string // heading text content
}

// headingPattern matches h1-h6 tags with id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes tags, decodes entities and trims whitespace.
// Decoding avoids double-encoding when the text is escaped again for the TOC.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// extractHeadings returns every heading that carries an id, in document order.
func extractHeadings(htmlContent string) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]headingInfo, 0, len(matches))
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// depthTracker normalizes heading levels into nesting depths.
// The shallowest heading level of the document is depth 1 and level jumps
// are flattened, so H1 -> H3 nests H3 directly under H1. Headings before the
// first shallowest one are clamped to the depth reached so far.
type depthTracker struct {
	minLevel  int
	lastDepth int
}

// newDepthTracker anchors depth 1 on the shallowest level in headings.
func newDepthTracker(headings []headingInfo) *depthTracker {
	d := &depthTracker{minLevel: 6}
	for _, h := range headings {
		d.minLevel = min(d.minLevel, h.Level)
	}
	return d
}

// next returns the nesting depth for a heading of the given level.
func (d *depthTracker) next(level int) int {
	depth := max(level-d.minLevel+1, 1)
	depth = min(depth, d.lastDepth+1)

	d.lastDepth = depth
	return depth
}

// BuildTOC renders the table of contents fragment for an HTML fragment.
// The result is a nested <ul> of links to heading anchors, or "" when the
// document has no headings.
func BuildTOC(htmlContent string) string {
	headings := extractHeadings(htmlContent)
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	tracker := newDepthTracker(headings)
	open := 0

	for _, h := range headings {
		depth := tracker.next(h.Level)

		if depth > open {
			buf.WriteString("<ul>\n")
			open++
		} else {
			buf.WriteString("</li>\n")
			for open > depth {
				buf.WriteString("</ul>\n</li>\n")
				open--
			}
		}

		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a>`)
	}

	buf.WriteString("</li>\n")
	for open > 1 {
		buf.WriteString("</ul>\n</li>\n")
		open--
	}
	buf.WriteString("</ul>\n")

	return buf.String()
}
