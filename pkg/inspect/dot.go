package inspect

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/imageforge/imageforge/pkg/markup"
)

// DefaultMaxText is the default truncation length of text labels.
const DefaultMaxText = 32

// Options configures DOT generation.
type Options struct {
	// Attrs lists each element's written attributes under its tag.
	Attrs bool

	// MaxText truncates text children and attribute values. Zero means
	// DefaultMaxText.
	MaxText int
}

// ToDOT converts a node tree to Graphviz DOT. Nodes are named n0, n1, ...
// in depth-first order.
func ToDOT(root *markup.Node, opts Options) string {
	if opts.MaxText <= 0 {
		opts.MaxText = DefaultMaxText
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	if root != nil {
		w := dotWriter{buf: &buf, opts: opts}
		w.node(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

func (w *dotWriter) id() string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++
	return id
}

func (w *dotWriter) node(n *markup.Node) string {
	id := w.id()
	fmt.Fprintf(w.buf, "  %s [label=%s];\n", id, quote(w.label(n)))

	for _, c := range n.Children {
		var child string
		switch c := c.(type) {
		case *markup.Node:
			child = w.node(c)
		case markup.Text:
			child = w.id()
			fmt.Fprintf(w.buf, "  %s [shape=note, fillcolor=lightyellow, label=%s];\n",
				child, quote(truncate(string(c), w.opts.MaxText)))
		default:
			continue
		}
		fmt.Fprintf(w.buf, "  %s -> %s;\n", id, child)
	}
	return id
}

func (w *dotWriter) label(n *markup.Node) string {
	if !w.opts.Attrs || len(n.Attrs) == 0 {
		return n.Tag
	}
	lines := []string{n.Tag}
	for _, a := range n.Attrs {
		if a.Value.Omitted() {
			continue
		}
		lines = append(lines, markup.AttrName(a.Key)+"="+truncate(a.Value.String(), w.opts.MaxText))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// quote writes s as a DOT string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderSVG lays out a DOT graph with Graphviz and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
