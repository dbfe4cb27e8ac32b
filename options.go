package terse

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-terse/internal/assets"
	"github.com/alnah/go-terse/internal/markup"
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Compiler or a Converter. Options that only matter
// for documents or PDF output are ignored by NewCompiler.
type Option func(*settings)

type settings struct {
	indentWidth    int
	logger         zerolog.Logger
	filters        []markup.ContentFilter
	markdown       bool
	highlight      bool
	highlightStyle string

	timeout   time.Duration
	style     string
	noStyle   bool
	assetPath string

	pdfConverter pdfConverter // injected by tests
}

func newSettings(opts []Option) settings {
	s := settings{
		indentWidth: DefaultIndentWidth,
		logger:      zerolog.Nop(),
		timeout:     defaultTimeout,
		style:       assets.DefaultStyleName,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithIndentWidth sets the number of spaces per nesting level.
// NewCompiler and NewConverter reject values below 1.
func WithIndentWidth(n int) Option {
	return func(s *settings) {
		s.indentWidth = n
	}
}

// WithLogger sets the logger compile warnings and conversion steps are
// reported to. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithContentFilter adds a filter consulted for leaf element content.
// Filters added this way run before the built-in ones, in the order given.
func WithContentFilter(f ContentFilter) Option {
	return func(s *settings) {
		if f != nil {
			s.filters = append(s.filters, f)
		}
	}
}

// WithMarkdown renders leaf content as inline Markdown.
func WithMarkdown() Option {
	return func(s *settings) {
		s.markdown = true
	}
}

// WithHighlighting highlights the content of elements with a
// language-<name> class using the named chroma style ("" for the default).
func WithHighlighting(style string) Option {
	return func(s *settings) {
		s.highlight = true
		s.highlightStyle = style
	}
}

// WithTimeout sets the page load timeout for PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("terse: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithStyle selects the document CSS: a style name ("default", "plain",
// "print" or one from the asset path), a path to a .css file, or inline
// CSS.
func WithStyle(style string) Option {
	return func(s *settings) {
		s.style = style
		s.noStyle = false
	}
}

// WithoutStyle produces documents without the built-in CSS.
func WithoutStyle() Option {
	return func(s *settings) {
		s.noStyle = true
	}
}

// WithAssetPath adds a directory of custom styles and templates, searched
// before the embedded ones.
func WithAssetPath(path string) Option {
	return func(s *settings) {
		s.assetPath = path
	}
}

func withPDFConverter(c pdfConverter) Option {
	return func(s *settings) {
		s.pdfConverter = c
	}
}
