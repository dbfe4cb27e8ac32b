package pipeline

import (
	"context"
	"regexp"
	"strings"
)

const byteOrderMark = "\uFEFF"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// SourcePreprocessor prepares raw source text for compilation.
type SourcePreprocessor interface {
	PreprocessSource(ctx context.Context, content string) string
}

// LineNormalizer strips a leading byte order mark and converts \r\n and \r
// line endings to \n. Indentation and blank lines are left alone since
// both carry meaning in long-text blocks.
type LineNormalizer struct{}

// PreprocessSource returns content normalized for the level-tree pass.
func (LineNormalizer) PreprocessSource(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}

var _ SourcePreprocessor = LineNormalizer{}
