package markup

import (
	"net/url"
	"regexp"
	"strings"
)

// Quoted substrings are swapped for placeholders delimited by Private Use
// Area runes while the line is split, so their spaces survive the split.
const (
	quoteStart = "\uE002" // U+E002: Private Use Area
	quoteEnd   = "\uE003" // U+E003: Private Use Area
)

var (
	quotedPattern      = regexp.MustCompile(`".*?"`)
	placeholderPattern = regexp.MustCompile(quoteStart + `[^` + quoteEnd + `]*` + quoteEnd)
)

// Tokenize splits a trimmed line on spaces, keeping each double-quoted
// substring (quotes included) inside a single token. Unbalanced quotes are
// treated as ordinary characters.
func Tokenize(line string) []string {
	protected := quotedPattern.ReplaceAllStringFunc(line, func(quoted string) string {
		return quoteStart + url.QueryEscape(quoted) + quoteEnd
	})

	fragments := strings.Split(protected, " ")
	tokens := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f == "" {
			continue
		}
		if strings.Contains(f, quoteStart) {
			f = placeholderPattern.ReplaceAllStringFunc(f, restoreQuoted)
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func restoreQuoted(placeholder string) string {
	payload := strings.TrimSuffix(strings.TrimPrefix(placeholder, quoteStart), quoteEnd)
	quoted, err := url.QueryUnescape(payload)
	if err != nil {
		return placeholder
	}
	return quoted
}
