package terse

import (
	"fmt"
	"strings"

	"github.com/alnah/go-terse/internal/markup"
)

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = markup.DefaultIndentWidth

// Warning is a diagnostic that did not stop compilation.
type Warning = markup.Warning

// WarningKind classifies a Warning.
type WarningKind = markup.WarningKind

// Warning kinds.
const (
	WarnMisconfiguredNode = markup.WarnMisconfiguredNode
	WarnFilterFailed      = markup.WarnFilterFailed
)

// Element is a compiled element as seen by a ContentFilter.
type Element = markup.Element

// ContentFilter rewrites leaf element content during rendering. See
// WithContentFilter.
type ContentFilter = markup.ContentFilter

// ContentFilterFunc adapts a function to ContentFilter.
type ContentFilterFunc = markup.ContentFilterFunc

// Result is the output of one compile.
type Result struct {
	HTML     string
	Warnings []Warning
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver is valid
// and means defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Document describes the HTML5 shell a fragment is wrapped in.
type Document struct {
	Title string // <title>, default "Document"
	Lang  string // <html lang>, default "en"
	CSS   string // appended after the converter's style
}

// Input contains conversion parameters.
type Input struct {
	Source    string        // terse source (required)
	SourceDir string        // resolves relative paths for PDF output (optional)
	Document  *Document     // document shell (optional)
	Page      *PageSettings // page settings (optional, nil = defaults)
	HTMLOnly  bool          // skip PDF generation
	Fragment  bool          // return the bare fragment; implies HTMLOnly
}

// ConvertResult holds the output of Converter.Convert.
type ConvertResult struct {
	HTML     []byte
	PDF      []byte // nil when HTMLOnly or Fragment is set
	Warnings []Warning
}
