// Package pipeline holds the stages that surround a terse compile:
//   - source preprocessing (line endings, byte order mark)
//   - content filters consulted while rendering leaf elements
//     (inline Markdown via goldmark, syntax highlighting via chroma)
//   - wrapping a compiled fragment in an HTML5 document with CSS
//   - rewriting relative paths to file:// URLs before PDF rendering
//
// The compile step itself lives in internal/markup and performs no I/O.
// PDF generation is handled by the root package using headless Chrome.
package pipeline
