package terse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alnah/go-terse/internal/markup"
	"github.com/alnah/go-terse/internal/pipeline"
)

// Compiler compiles terse source into HTML fragments. It holds
// configuration only; every call builds its own parser state, so a
// Compiler is safe for concurrent use.
type Compiler struct {
	indentWidth  int
	logger       zerolog.Logger
	preprocessor pipeline.SourcePreprocessor
	renderer     markup.Renderer
	highlighter  *pipeline.HighlightFilter
}

// Compile compiles source with the given indent width and default options.
// Warnings are discarded; use a Compiler to see them.
func Compile(source string, indentWidth int) (string, error) {
	c, err := NewCompiler(WithIndentWidth(indentWidth))
	if err != nil {
		return "", err
	}
	res, err := c.Compile(source)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// NewCompiler creates a Compiler. It fails with ErrInvalidIndentWidth for
// a width below 1 and when a highlight style is unknown.
func NewCompiler(opts ...Option) (*Compiler, error) {
	return newCompiler(newSettings(opts))
}

func newCompiler(s settings) (*Compiler, error) {
	if s.indentWidth < 1 {
		return nil, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidIndentWidth, s.indentWidth)
	}

	c := &Compiler{
		indentWidth:  s.indentWidth,
		logger:       s.logger,
		preprocessor: pipeline.LineNormalizer{},
	}

	filters := append([]markup.ContentFilter(nil), s.filters...)
	if s.highlight {
		h, err := pipeline.NewHighlightFilter(s.highlightStyle)
		if err != nil {
			return nil, err
		}
		c.highlighter = h
		filters = append(filters, h)
	}
	if s.markdown {
		filters = append(filters, pipeline.NewMarkdownFilter())
	}
	c.renderer.Filter = pipeline.ChainFilters(filters...)

	return c, nil
}

// Compile compiles one complete source. Structural problems return a
// *StructuralError; misconfigured elements are skipped and reported in
// Result.Warnings and on the logger.
func (c *Compiler) Compile(source string) (*Result, error) {
	return c.compile(source, c.logger)
}

func (c *Compiler) compile(source string, logger zerolog.Logger) (*Result, error) {
	source = c.preprocessor.PreprocessSource(context.Background(), source)

	root, err := markup.BuildLevelTree(source, c.indentWidth)
	if err != nil {
		return nil, err
	}

	html, warnings := c.renderer.Render(markup.BuildAST(root))
	for _, w := range warnings {
		logger.Warn().
			Int("line", w.Line).
			Str("kind", string(w.Kind)).
			Msg(w.Message)
	}

	return &Result{HTML: html, Warnings: warnings}, nil
}

// IndentWidth returns the configured spaces per nesting level.
func (c *Compiler) IndentWidth() int {
	return c.indentWidth
}

// highlightCSS returns the stylesheet for highlighted code, or "" when
// highlighting is off.
func (c *Compiler) highlightCSS() (string, error) {
	if c.highlighter == nil {
		return "", nil
	}
	return c.highlighter.CSS()
}
