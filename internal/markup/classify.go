package markup

import "strings"

// TokenKind is the role a token plays in an element declaration.
type TokenKind int

const (
	TokenTag TokenKind = iota
	TokenID
	TokenClass
	TokenAttribute
	TokenContent
)

func (k TokenKind) String() string {
	switch k {
	case TokenTag:
		return "tag"
	case TokenID:
		return "id"
	case TokenClass:
		return "class"
	case TokenAttribute:
		return "attribute"
	case TokenContent:
		return "content"
	default:
		return "unknown"
	}
}

// Token is a classified token. Name holds the tag, id, class or attribute
// name; Value holds the attribute value or the unwrapped content.
type Token struct {
	Kind  TokenKind
	Name  string
	Value string
}

// Attribute is one name=value pair in declaration order.
type Attribute struct {
	Name  string
	Value string
}

// Declaration is the flat record built from one line's tokens.
type Declaration struct {
	Tag        string
	ID         string
	Classes    []string
	Attributes []Attribute
	Content    string
}

// ClassifyToken assigns a kind to tok. Rules apply in order: id sigil,
// class sigil, inner '=', quoted or backticked content, and tag as the
// fallback.
func ClassifyToken(tok string) Token {
	switch {
	case strings.HasPrefix(tok, "#"):
		return Token{Kind: TokenID, Name: tok[1:]}
	case strings.HasPrefix(tok, "."):
		return Token{Kind: TokenClass, Name: tok[1:]}
	}

	// The first '=' must sit strictly inside the token.
	if eq := strings.IndexByte(tok, '='); eq > 0 && eq < len(tok)-1 {
		return Token{Kind: TokenAttribute, Name: tok[:eq], Value: tok[eq+1:]}
	}

	if isWrapped(tok, '"') || isWrapped(tok, '`') {
		return Token{Kind: TokenContent, Value: tok[1 : len(tok)-1]}
	}

	return Token{Kind: TokenTag, Name: tok}
}

// isWrapped reports whether s is delim, a non-empty interior, delim.
func isWrapped(s string, delim byte) bool {
	return len(s) > 2 && s[0] == delim && s[len(s)-1] == delim
}

// Declare folds tokens into a Declaration. A later id, content or tag
// replaces an earlier one. Classes and attributes accumulate.
func Declare(tokens []string) Declaration {
	var d Declaration
	for _, raw := range tokens {
		tok := ClassifyToken(raw)
		switch tok.Kind {
		case TokenID:
			d.ID = tok.Name
		case TokenClass:
			d.Classes = append(d.Classes, tok.Name)
		case TokenAttribute:
			d.Attributes = append(d.Attributes, Attribute{Name: tok.Name, Value: tok.Value})
		case TokenContent:
			d.Content = tok.Value
		case TokenTag:
			d.applySelector(tok.Name)
		}
	}
	return d
}

// applySelector sets the tag from a tag token. A compound token such as
// div#main.wide also contributes its id and classes.
func (d *Declaration) applySelector(tok string) {
	i := strings.IndexAny(tok, "#.")
	if i <= 0 {
		d.Tag = tok
		return
	}

	d.Tag = tok[:i]
	rest := tok[i:]
	for rest != "" {
		sigil := rest[0]
		name := rest[1:]
		rest = ""
		if next := strings.IndexAny(name, "#."); next >= 0 {
			name, rest = name[:next], name[next:]
		}
		if name == "" {
			continue
		}
		if sigil == '#' {
			d.ID = name
		} else {
			d.Classes = append(d.Classes, name)
		}
	}
}
