package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-terse/internal/markup"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

const languageClassPrefix = "language-"

// ErrUnknownHighlightStyle indicates the chroma style name is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// HighlightFilter highlights the content of elements carrying a
// language-<name> class, e.g. code.language-go.
type HighlightFilter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlightFilter creates a HighlightFilter using the named chroma
// style. An empty name selects DefaultHighlightStyle.
func NewHighlightFilter(styleName string) (*HighlightFilter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}

	return &HighlightFilter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// FilterContent highlights el.Content when el names a known language.
func (f *HighlightFilter) FilterContent(el *markup.Element) (string, bool, error) {
	lexer := lexerFor(el.Classes)
	if lexer == nil {
		return "", false, nil
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, el.Content)
	if err != nil {
		return "", false, fmt.Errorf("tokenising %s: %w", lexer.Config().Name, err)
	}

	var b strings.Builder
	if err := f.formatter.Format(&b, f.style, iterator); err != nil {
		return "", false, fmt.Errorf("formatting %s: %w", lexer.Config().Name, err)
	}
	return b.String(), true, nil
}

// CSS returns the stylesheet matching the classes the filter emits.
func (f *HighlightFilter) CSS() (string, error) {
	var b strings.Builder
	if err := f.formatter.WriteCSS(&b, f.style); err != nil {
		return "", err
	}
	return b.String(), nil
}

func lexerFor(classes []string) chroma.Lexer {
	for _, class := range classes {
		name, ok := strings.CutPrefix(class, languageClassPrefix)
		if !ok || name == "" {
			continue
		}
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

var _ markup.ContentFilter = (*HighlightFilter)(nil)
