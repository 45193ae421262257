package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PathRewriter resolves relative image sources and link targets against the
// directory of the document being previewed.
//
// With an empty BaseURL, paths become absolute file:// URLs (standalone
// exports, PDF rendering). With a BaseURL, paths become BaseURL plus the
// slash-separated path relative to SourceDir, which is how the preview
// server exposes the document directory over HTTP.
//
// Anchors, URLs, absolute paths and paths escaping SourceDir are left as-is.
type PathRewriter struct {
	SourceDir string
	BaseURL   string
}

// Rewrite returns htmlContent with relative media sources and link targets
// resolved.
// A rewriter without SourceDir returns the content unchanged.
func (r PathRewriter) Rewrite(htmlContent string) (string, error) {
	if r.SourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(r.SourceDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		r.rewriteNode(n, absSourceDir)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseHTML returns the top-level nodes of content. A complete document
// yields its document node; anything else is parsed as body children so
// rendering adds no html or body wrapper.
func parseHTML(content string) ([]*html.Node, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

// resourceAttr maps elements with a document-relative reference to the
// attribute holding it.
var resourceAttr = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
	atom.A:      "href",
}

// rewriteNode traverses the DOM and rewrites relative references.
func (r PathRewriter) rewriteNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		if key, ok := resourceAttr[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
					n.Attr[i].Val = r.resolve(n.Attr[i].Val, sourceDir)
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.rewriteNode(c, sourceDir)
	}
}

// resolve returns ref rewritten against sourceDir, or ref unchanged when it
// is not a local relative path. A ?query or #fragment suffix is preserved.
func (r PathRewriter) resolve(ref, sourceDir string) string {
	p, suffix := splitSuffix(ref)
	if p == "" || strings.HasPrefix(p, "//") {
		return ref
	}
	if u, err := url.Parse(p); err != nil || u.Scheme != "" {
		return ref
	}

	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return ref
	}
	rel := filepath.FromSlash(unescaped)
	if !filepath.IsLocal(rel) {
		return ref
	}

	if r.BaseURL == "" {
		return pathToFileURL(filepath.Join(sourceDir, rel)) + suffix
	}
	return joinURLPath(r.BaseURL, rel) + suffix
}

// splitSuffix splits ref before its first '?' or '#'.
func splitSuffix(ref string) (path, suffix string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x -> /C:/x
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// joinURLPath appends a relative filesystem path to a base URL path,
// escaping each segment.
func joinURLPath(base, rel string) string {
	segments := strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
}
