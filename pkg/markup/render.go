package markup

import (
	"io"
	"strings"
)

// Render serializes v. A string (or [Text]) is returned unchanged, a node is
// written as markup, and any other value, including nil, yields "".
func Render(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Text:
		return string(x)
	case *Node:
		if x == nil {
			return ""
		}
		return x.String()
	case Node:
		return x.String()
	}
	return ""
}

// String returns the markup for the subtree rooted at n.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// WriteTo writes the markup for the subtree rooted at n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	written, err := io.WriteString(w, n.String())
	return int64(written), err
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	writeAttrs(b, n.Attrs)
	b.WriteByte('>')
	for _, c := range n.Children {
		switch x := c.(type) {
		case Text:
			b.WriteString(Escape(string(x)))
		case *Node:
			if x != nil {
				x.write(b)
			}
		}
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// Walk calls fn for n and each descendant node in depth-first order, passing
// the depth (0 for n). Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		if x, ok := c.(*Node); ok && x != nil {
			x.walk(fn, depth+1)
		}
	}
}
