package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-terse/internal/markup"
)

// ErrMarkdownConversion indicates goldmark failed on element content.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// rawTextTags hold content that must reach the output untouched.
var rawTextTags = map[string]struct{}{
	"script": {}, "style": {}, "pre": {}, "code": {}, "textarea": {},
}

// MarkdownFilter renders leaf element content as inline Markdown.
type MarkdownFilter struct {
	md goldmark.Markdown
}

// NewMarkdownFilter creates a MarkdownFilter with GFM extensions and
// syntax-highlighted fenced code. Raw HTML inside content is not passed
// through.
func NewMarkdownFilter() *MarkdownFilter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &MarkdownFilter{md: md}
}

// FilterContent converts el.Content. Elements whose content is raw text
// (script, style, pre, code, textarea) are not handled.
func (f *MarkdownFilter) FilterContent(el *markup.Element) (string, bool, error) {
	if _, raw := rawTextTags[el.Tag]; raw {
		return "", false, nil
	}

	var buf bytes.Buffer
	if err := f.md.Convert([]byte(el.Content), &buf); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return unwrapParagraph(buf.String()), true, nil
}

// unwrapParagraph strips the <p> goldmark puts around a single paragraph so
// the result sits inline in the enclosing element.
func unwrapParagraph(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}

var _ markup.ContentFilter = (*MarkdownFilter)(nil)
