package markup

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"raw string untouched", `<b>&</b>`, `<b>&</b>`},
		{"nil", nil, ""},
		{"nil node", (*Node)(nil), ""},
		{"number", 42, ""},
		{"map", map[string]any{"tag": "g"}, ""},
		{"empty element closed", H("rect", A("x", 0)), `<rect x="0"></rect>`},
		{"no attrs", H("g", nil), `<g></g>`},
		{"text escaped", H("text", nil, `a < b & "c"`), `<text>a &lt; b &amp; &quot;c&quot;</text>`},
		{"nested", H("g", A("opacity", 0.9), H("circle", A("r", 18)), "x"), `<g opacity="0.9"><circle r="18"></circle>x</g>`},
		{"node value", *H("line", nil), `<line></line>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFalsyChildrenAbsent(t *testing.T) {
	n := H("g", nil, nil, "a", false, H("b", nil), nil, []any{false, "c"})
	want := `<g>a<b></b>c</g>`
	if got := Render(n); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderBalancedTags(t *testing.T) {
	tree := H("svg", nil,
		H("defs", nil),
		H("g", nil, H("rect", nil), H("path", A("d", "M 0 0")), H("g", nil)),
	)
	out := Render(tree)

	tree.Walk(func(n *Node, _ int) bool {
		opens := strings.Count(out, "<"+n.Tag+">") + strings.Count(out, "<"+n.Tag+" ")
		closes := strings.Count(out, "</"+n.Tag+">")
		if opens != closes {
			t.Errorf("tag %s: %d opens, %d closes in %q", n.Tag, opens, closes, out)
		}
		return true
	})
	if strings.Contains(out, "/>") {
		t.Errorf("Render() used self-closing shorthand: %q", out)
	}
}

func TestWriteTo(t *testing.T) {
	n := H("g", A("id", "x"), "t")
	var buf bytes.Buffer
	written, err := n.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if buf.String() != n.String() {
		t.Errorf("WriteTo wrote %q, want %q", buf.String(), n.String())
	}
	if written != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, want %d", written, buf.Len())
	}
}
