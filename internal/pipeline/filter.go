package pipeline

import "github.com/alnah/go-terse/internal/markup"

// filterChain asks each filter in turn; the first one to handle wins.
type filterChain []markup.ContentFilter

func (c filterChain) FilterContent(el *markup.Element) (string, bool, error) {
	for _, f := range c {
		out, handled, err := f.FilterContent(el)
		if err != nil || handled {
			return out, handled, err
		}
	}
	return "", false, nil
}

// ChainFilters combines filters in priority order. Nil filters are
// skipped; with nothing left it returns nil.
func ChainFilters(filters ...markup.ContentFilter) markup.ContentFilter {
	var chain filterChain
	for _, f := range filters {
		if f != nil {
			chain = append(chain, f)
		}
	}

	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	default:
		return chain
	}
}
