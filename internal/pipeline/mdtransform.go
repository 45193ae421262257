package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through goldmark unchanged, so ==text== works without WithUnsafe.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

var markReplacer = strings.NewReplacer(
	MarkStartPlaceholder, "<mark>",
	MarkEndPlaceholder, "</mark>",
)

// Preprocess prepares editor text for goldmark in one pass over its lines:
// \r\n and \r become \n, runs of empty lines outside code fences shrink to
// one, and ==text== outside code fences becomes a placeholder pair.
func Preprocess(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var (
		out   strings.Builder
		fence string // opening fence while inside a fenced block
		empty int    // consecutive empty lines seen outside fences
	)
	out.Grow(len(content))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		switch {
		case fence != "":
			if closesFence(line, fence) {
				fence = ""
			}
		case line == "":
			empty++
			if empty > 1 {
				continue
			}
		default:
			empty = 0
			if f := openingFence(line); f != "" {
				fence = f
			} else {
				line = highlightPattern.ReplaceAllString(line, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
			}
		}

		out.WriteString(line)
		if i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// openingFence returns the ``` or ~~~ run opening a fenced code block, or "".
func openingFence(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether line ends the block opened by fence.
func closesFence(line, fence string) bool {
	f := openingFence(line)
	return f != "" && f[0] == fence[0] && len(f) >= len(fence) &&
		strings.TrimSpace(strings.TrimLeft(line, " ")[len(f):]) == ""
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags.
// Must run after goldmark and after sanitizing.
func ConvertMarkPlaceholders(content string) string {
	return markReplacer.Replace(content)
}
