package markup

import "strings"

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 4

// Line is the classification of one raw source line.
type Line struct {
	Contentful bool
	Level      int
	// Misalign counts leading spaces past the last full level. A non-zero
	// value means the line does not sit on any level.
	Misalign int
	Text     string
}

// ClassifyLine trims raw and derives its nesting level from the count of
// leading space characters divided by width. Tabs do not indent.
// width must be positive.
func ClassifyLine(raw string, width int) Line {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Line{}
	}

	spaces := len(raw) - len(strings.TrimLeft(raw, " "))
	return Line{
		Contentful: true,
		Level:      spaces / width,
		Misalign:   spaces % width,
		Text:       text,
	}
}
