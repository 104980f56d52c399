package markup

import "reflect"

// Child is an element child: either [Text] or *[Node].
type Child interface {
	isChild()
}

// Text is character data. It is escaped when written as a child.
type Text string

func (Text) isChild() {}

// Node is one element of a document tree. Nodes are built once with [H] or a
// constructor and only read afterwards.
type Node struct {
	Tag      string
	Attrs    Attrs
	Children []Child
}

func (*Node) isChild() {}

// H creates a node. attrs may be nil. children are flattened and filtered
// with [Flatten] before they are stored; the attribute list is copied.
func H(tag string, attrs Attrs, children ...any) *Node {
	var a Attrs
	if len(attrs) > 0 {
		a = attrs.Clone()
	}
	return &Node{Tag: tag, Attrs: a, Children: Flatten(children...)}
}

// Flatten turns a child argument list into a flat list of children, keeping
// order. Slices and arrays are expanded to any depth. nil, nil nodes and
// booleans are dropped, as is any value that is neither text nor a node,
// since such values have no written form.
func Flatten(children ...any) []Child {
	var out []Child
	for _, c := range children {
		out = appendChild(out, c)
	}
	return out
}

func appendChild(out []Child, c any) []Child {
	switch x := c.(type) {
	case nil, bool:
		return out
	case string:
		return append(out, Text(x))
	case Text:
		return append(out, x)
	case *Node:
		if x == nil {
			return out
		}
		return append(out, x)
	case Node:
		n := x
		return append(out, &n)
	case []any:
		for _, e := range x {
			out = appendChild(out, e)
		}
		return out
	case []Child:
		for _, e := range x {
			out = appendChild(out, e)
		}
		return out
	case []*Node:
		for _, e := range x {
			out = appendChild(out, e)
		}
		return out
	case []string:
		for _, e := range x {
			out = append(out, Text(e))
		}
		return out
	}

	rv := reflect.ValueOf(c)
	if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			out = appendChild(out, rv.Index(i).Interface())
		}
	}
	return out
}
