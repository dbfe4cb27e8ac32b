package terse

import (
	"errors"

	"github.com/alnah/go-terse/internal/assets"
	"github.com/alnah/go-terse/internal/markup"
	"github.com/alnah/go-terse/internal/pipeline"
)

// Compile errors.
var (
	ErrEmptySource        = markup.ErrEmptySource
	ErrInvalidIndentWidth = markup.ErrInvalidIndentWidth
	ErrStructure          = markup.ErrStructure

	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
)

// Conversion errors.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPoolClosed     = errors.New("converter pool closed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// StructuralError reports indentation the compiler cannot turn into a tree.
type StructuralError = markup.StructuralError
