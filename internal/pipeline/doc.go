// Package pipeline implements the stateless stages of preview rendering.
//
// The stages run in this order for every snapshot:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark, with optional Chroma
//     highlighting and optional raw HTML passed through a sanitizer
//   - Relative path rewriting for images and links
//   - Table of contents extraction from the rendered headings
//   - Header building (MathJax, highlighting CSS) and template rendering
//
// Scheduling, ordering and delivery of results are handled by the root
// mdpreview package; nothing in this package keeps state between calls
// except the cache of configured Goldmark engines.
package pipeline
