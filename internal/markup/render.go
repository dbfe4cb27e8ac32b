package markup

import (
	"fmt"
	"strings"
)

// voidElements never carry children, content or a closing tag.
var voidElements = map[string]struct{}{
	"meta": {}, "base": {}, "br": {}, "hr": {}, "img": {}, "input": {}, "col": {},
	"frame": {}, "link": {}, "area": {}, "param": {}, "embed": {}, "keygen": {}, "source": {},
}

// IsVoid reports whether tag renders as a self-closing element.
func IsVoid(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}

// WarningKind classifies a non-fatal compile diagnostic.
type WarningKind string

const (
	WarnMisconfiguredNode WarningKind = "misconfigured-node"
	WarnFilterFailed      WarningKind = "filter-failed"
)

// Warning is a diagnostic that did not stop compilation.
type Warning struct {
	Kind    WarningKind
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
}

// ContentFilter transforms the content of a leaf element at render time.
// handled=false leaves the content untouched. An error keeps the raw
// content and is reported as a WarnFilterFailed warning.
type ContentFilter interface {
	FilterContent(el *Element) (html string, handled bool, err error)
}

// ContentFilterFunc adapts a function to ContentFilter.
type ContentFilterFunc func(el *Element) (string, bool, error)

// FilterContent calls f(el).
func (f ContentFilterFunc) FilterContent(el *Element) (string, bool, error) {
	return f(el)
}

// Renderer serializes Element trees to HTML. The zero value renders
// content verbatim.
type Renderer struct {
	Filter ContentFilter
}

type renderFrame struct {
	el      *Element
	closing bool
}

// Render returns the HTML for root and the warnings raised along the way.
// An element without a tag renders as nothing, subtree included.
func (r *Renderer) Render(root *Element) (string, []Warning) {
	if root == nil {
		return "", nil
	}

	var (
		b        strings.Builder
		warnings []Warning
	)

	stack := []renderFrame{{el: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		el := f.el
		if f.closing {
			writeClose(&b, el.Tag)
			continue
		}

		if el.Tag == "" {
			warnings = append(warnings, Warning{
				Kind:    WarnMisconfiguredNode,
				Line:    el.Line,
				Message: "element has no tag and was not rendered",
			})
			continue
		}

		b.WriteString("<")
		b.WriteString(el.Tag)
		writeAttributes(&b, el)

		if IsVoid(el.Tag) {
			b.WriteString(" />")
			continue
		}
		b.WriteString(">")

		if len(el.Children) == 0 {
			content, warn := r.content(el)
			if warn != nil {
				warnings = append(warnings, *warn)
			}
			b.WriteString(content)
			writeClose(&b, el.Tag)
			continue
		}

		// Children go on the stack in reverse so the first pops first.
		stack = append(stack, renderFrame{el: el, closing: true})
		for i := len(el.Children) - 1; i >= 0; i-- {
			stack = append(stack, renderFrame{el: el.Children[i]})
		}
	}

	return b.String(), warnings
}

func (r *Renderer) content(el *Element) (string, *Warning) {
	if r.Filter == nil || el.Content == "" {
		return el.Content, nil
	}

	out, handled, err := r.Filter.FilterContent(el)
	if err != nil {
		return el.Content, &Warning{
			Kind:    WarnFilterFailed,
			Line:    el.Line,
			Message: err.Error(),
		}
	}
	if !handled {
		return el.Content, nil
	}
	return out, nil
}

func writeAttributes(b *strings.Builder, el *Element) {
	if el.ID != "" {
		b.WriteString(` id="`)
		b.WriteString(el.ID)
		b.WriteString(`"`)
	}

	if len(el.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(el.Classes, " "))
		b.WriteString(`"`)
	}

	for _, attr := range el.Attributes {
		b.WriteString(" ")
		b.WriteString(attr.Name)
		b.WriteString("=")
		if isQuoted(attr.Value) {
			b.WriteString(attr.Value)
			continue
		}
		b.WriteString(`"`)
		b.WriteString(attr.Value)
		b.WriteString(`"`)
	}
}

func writeClose(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

// isQuoted reports whether v is already wrapped in double quotes.
func isQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}
