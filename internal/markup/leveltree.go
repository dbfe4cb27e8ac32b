package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// RawNode is a node of the level tree: the accumulated declaration text of
// one element before tokenization.
type RawNode struct {
	Text     string
	Line     int // source line that opened the node, 1-based
	Children []*RawNode
	Parent   *RawNode
}

type parseMode int

const (
	modeNormal parseMode = iota
	modeLongText
)

// continuationPattern matches a bare attribute at the start of a line.
var continuationPattern = regexp.MustCompile(`^[A-Za-z0-9\-:@.]+=`)

// treeParser is the state of one level-tree pass.
type treeParser struct {
	width int
	mode  parseMode
	root  *RawNode
	// open[d] is the innermost open node at depth d; the last entry is the
	// node later lines attach to or extend.
	open     []*RawNode
	longLine int
}

// BuildLevelTree groups the lines of source into a tree mirroring their
// indentation. Blank lines are skipped outside long-text blocks.
func BuildLevelTree(source string, width int) (*RawNode, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidIndentWidth, width)
	}

	p := &treeParser{width: width}
	for i, raw := range strings.Split(source, "\n") {
		if err := p.feed(i+1, raw); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *treeParser) feed(lineNo int, raw string) error {
	if p.mode == modeLongText {
		p.appendLongText(raw)
		return nil
	}

	line := ClassifyLine(raw, p.width)
	if !line.Contentful {
		return nil
	}

	if p.root == nil {
		return p.openRoot(lineNo, line)
	}

	if opensLongText(line.Text) {
		p.current().Text += ` "` + line.Text[1:]
		p.mode = modeLongText
		p.longLine = lineNo
		return nil
	}

	if line.Misalign != 0 {
		return structuralError(lineNo, line.Text, ReasonMisaligned)
	}

	depth := len(p.open) - 1
	switch {
	case line.Level == depth:
		if isContinuation(line.Text) {
			p.current().Text += " " + line.Text
			return nil
		}
		return p.attach(lineNo, line)
	case line.Level < depth, line.Level == depth+1:
		return p.attach(lineNo, line)
	default:
		return structuralError(lineNo, line.Text, ReasonTooDeep)
	}
}

func (p *treeParser) openRoot(lineNo int, line Line) error {
	if line.Level != 0 {
		return structuralError(lineNo, line.Text, ReasonIndentedRoot)
	}
	if line.Misalign != 0 {
		return structuralError(lineNo, line.Text, ReasonMisaligned)
	}
	p.root = &RawNode{Text: line.Text, Line: lineNo}
	p.open = []*RawNode{p.root}
	return nil
}

// attach opens a new node at line.Level under the node open one level up.
func (p *treeParser) attach(lineNo int, line Line) error {
	if line.Level == 0 {
		return structuralError(lineNo, line.Text, ReasonMultipleRoots)
	}

	parent := p.open[line.Level-1]
	node := &RawNode{Text: line.Text, Line: lineNo, Parent: parent}
	parent.Children = append(parent.Children, node)
	p.open = append(p.open[:line.Level], node)
	return nil
}

// appendLongText adds a raw line to the open long-text block. A line ending
// in a backtick closes the block.
func (p *treeParser) appendLongText(raw string) {
	cur := p.current()
	trimmed := strings.TrimRightFunc(raw, unicode.IsSpace)
	if strings.HasSuffix(trimmed, "`") {
		cur.Text += trimmed[:len(trimmed)-1] + `"`
		p.mode = modeNormal
		return
	}
	cur.Text += raw
}

func (p *treeParser) current() *RawNode {
	return p.open[len(p.open)-1]
}

func (p *treeParser) finish() (*RawNode, error) {
	if p.mode == modeLongText {
		return nil, structuralError(p.longLine, "", ReasonUnclosedLongText)
	}
	if p.root == nil {
		return nil, ErrEmptySource
	}
	return p.root, nil
}

// opensLongText reports whether text starts a multi-line backtick block.
// A one-line span such as `text` does not.
func opensLongText(text string) bool {
	if !strings.HasPrefix(text, "`") {
		return false
	}
	return len(text) == 1 || !strings.HasSuffix(text, "`")
}

// isContinuation reports whether a same-level line extends the previous
// element instead of declaring a sibling.
func isContinuation(text string) bool {
	return strings.HasPrefix(text, "#") ||
		strings.HasPrefix(text, ".") ||
		strings.HasPrefix(text, `"`) ||
		continuationPattern.MatchString(text)
}
