package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	a := H("a", nil)
	b := H("b", nil)
	var nilNode *Node

	tests := []struct {
		name string
		in   []any
		want []Child
	}{
		{"empty", nil, nil},
		{"text and node", []any{"x", a}, []Child{Text("x"), a}},
		{"drops nil and false", []any{nil, a, false, "y", nilNode}, []Child{a, Text("y")}},
		{"nested slices", []any{[]any{a, []any{"t", []any{b}}}}, []Child{a, Text("t"), b}},
		{"typed slices", []any{[]*Node{a, b}, []string{"p", "q"}}, []Child{a, b, Text("p"), Text("q")}},
		{"child slice", []any{[]Child{Text("c"), a}}, []Child{Text("c"), a}},
		{"array", []any{[2]any{a, false}}, []Child{a}},
		{"unrenderable dropped", []any{42, 1.5, true, struct{}{}, "k"}, []Child{Text("k")}},
		{"empty string kept", []any{""}, []Child{Text("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in...)
			if diff := cmp.Diff(tt.want, got, valueCmp); diff != "" {
				t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHCopiesAttrs(t *testing.T) {
	attrs := A("fill", "red")
	n := H("rect", attrs)
	attrs[0].Value = StringValue("blue")

	if v, _ := n.Attrs.Get("fill"); v.String() != "red" {
		t.Errorf("node attrs changed with caller slice: fill = %q", v.String())
	}
}

func TestHEmptyAttrs(t *testing.T) {
	if n := H("g", Attrs{}); n.Attrs != nil {
		t.Errorf("Attrs = %v, want nil", n.Attrs)
	}
}

func TestWalk(t *testing.T) {
	tree := H("svg", nil,
		H("g", nil, H("rect", nil), "text"),
		H("circle", nil),
	)

	var visited []string
	var depths []int
	tree.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Tag)
		depths = append(depths, depth)
		return true
	})

	if diff := cmp.Diff([]string{"svg", "g", "rect", "circle"}, visited); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1}, depths); diff != "" {
		t.Errorf("Walk depth mismatch (-want +got):\n%s", diff)
	}

	visited = nil
	tree.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Tag)
		return n.Tag != "g"
	})
	if diff := cmp.Diff([]string{"svg", "g", "circle"}, visited); diff != "" {
		t.Errorf("Walk skip mismatch (-want +got):\n%s", diff)
	}
}
