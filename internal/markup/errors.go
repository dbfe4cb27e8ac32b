package markup

import (
	"errors"
	"fmt"
)

// Sentinel errors for compilation.
var (
	ErrEmptySource        = errors.New("source has no content")
	ErrInvalidIndentWidth = errors.New("invalid indent width")

	// ErrStructure is matched by every *StructuralError.
	ErrStructure = errors.New("invalid structure")
)

// Reason identifies why a line broke the indentation structure.
type Reason int

const (
	ReasonTooDeep Reason = iota + 1
	ReasonIndentedRoot
	ReasonMultipleRoots
	ReasonMisaligned
	ReasonUnclosedLongText
)

func (r Reason) String() string {
	switch r {
	case ReasonTooDeep:
		return "indented more than one level deeper than the previous element"
	case ReasonIndentedRoot:
		return "first element must not be indented"
	case ReasonMultipleRoots:
		return "only one top-level element is allowed"
	case ReasonMisaligned:
		return "indentation is not a multiple of the indent width"
	case ReasonUnclosedLongText:
		return "long-text block is never closed with a backtick"
	default:
		return "unknown structural problem"
	}
}

// StructuralError reports a line whose depth transition cannot be placed
// in the tree. It aborts the compile call.
type StructuralError struct {
	Line   int // 1-based
	Text   string
	Reason Reason
}

func (e *StructuralError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap lets errors.Is(err, ErrStructure) match.
func (e *StructuralError) Unwrap() error {
	return ErrStructure
}

func structuralError(line int, text string, reason Reason) *StructuralError {
	return &StructuralError{Line: line, Text: text, Reason: reason}
}
