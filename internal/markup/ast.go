package markup

// Element is a classified node ready for rendering.
type Element struct {
	Declaration
	Children []*Element
	Line     int
}

// BuildAST classifies every node of the level tree, keeping child order.
// It walks the tree with an explicit stack, so depth is bounded only by
// memory.
func BuildAST(root *RawNode) *Element {
	if root == nil {
		return nil
	}

	type job struct {
		raw *RawNode
		el  *Element
	}

	top := newElement(root)
	stack := []job{{raw: root, el: top}}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(j.raw.Children) == 0 {
			continue
		}
		j.el.Children = make([]*Element, len(j.raw.Children))
		for i, child := range j.raw.Children {
			el := newElement(child)
			j.el.Children[i] = el
			stack = append(stack, job{raw: child, el: el})
		}
	}
	return top
}

func newElement(raw *RawNode) *Element {
	return &Element{
		Declaration: Declare(Tokenize(raw.Text)),
		Line:        raw.Line,
	}
}
