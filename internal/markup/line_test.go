package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		width int
		want  Line
	}{
		{"empty", "", 4, Line{}},
		{"spaces only", "      ", 4, Line{}},
		{"tabs only", "\t\t", 4, Line{}},
		{"top level", "div", 4, Line{Contentful: true, Level: 0, Text: "div"}},
		{"one level", "    div", 4, Line{Contentful: true, Level: 1, Text: "div"}},
		{"two levels", "        p \"hi\"  ", 4, Line{Contentful: true, Level: 2, Text: `p "hi"`}},
		{"width two", "    a", 2, Line{Contentful: true, Level: 2, Text: "a"}},
		{"misaligned", "      a", 4, Line{Contentful: true, Level: 1, Misalign: 2, Text: "a"}},
		{"tab does not indent", "\tdiv", 4, Line{Contentful: true, Level: 0, Text: "div"}},
		{"trailing carriage return", "  span\r", 2, Line{Contentful: true, Level: 1, Text: "span"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyLine(tt.raw, tt.width))
		})
	}
}

func TestClassifyLine_ExactMultiplesGiveIntegerLevels(t *testing.T) {
	t.Parallel()

	for width := 1; width <= 8; width++ {
		for level := 0; level <= 12; level++ {
			raw := strings.Repeat(" ", level*width) + "x"
			got := ClassifyLine(raw, width)
			assert.Equal(t, level, got.Level, "width=%d level=%d", width, level)
			assert.Zero(t, got.Misalign, "width=%d level=%d", width, level)
		}
	}
}
