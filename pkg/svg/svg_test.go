package svg

import (
	"strings"
	"testing"

	"github.com/imageforge/imageforge/pkg/markup"
)

func TestSVGRoot(t *testing.T) {
	tests := []struct {
		name  string
		attrs markup.Attrs
		want  string
	}{
		{
			name:  "derives viewBox",
			attrs: markup.A("width", 128, "height", 128),
			want:  `<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128"></svg>`,
		},
		{
			name:  "explicit viewBox kept",
			attrs: markup.A("viewBox", "0 0 10 10", "width", 100, "height", 100),
			want:  `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 10 10"></svg>`,
		},
		{
			name:  "missing height",
			attrs: markup.A("width", 100),
			want:  `<svg xmlns="http://www.w3.org/2000/svg" width="100"></svg>`,
		},
		{
			name:  "zero width is falsy",
			attrs: markup.A("width", 0, "height", 50),
			want:  `<svg xmlns="http://www.w3.org/2000/svg" width="0" height="50"></svg>`,
		},
		{
			name:  "no attrs",
			attrs: nil,
			want:  `<svg xmlns="http://www.w3.org/2000/svg"></svg>`,
		},
		{
			name:  "extra attrs follow",
			attrs: markup.A("className", "icon", "width", 4, "height", 2, "fill", "none"),
			want:  `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="2" viewBox="0 0 4 2" class="icon" fill="none"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Render(SVG(tt.attrs)); got != tt.want {
				t.Errorf("SVG() = %q\nwant      %q", got, tt.want)
			}
		})
	}
}

func TestSVGEndToEnd(t *testing.T) {
	doc := SVG(markup.A("width", 128, "height", 128),
		Rect(markup.A("x", 0, "y", 0, "width", 128, "height", 128, "fill", "#000")),
	)
	out := markup.Render(doc)

	prefix := `<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">`
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("output %q does not start with %q", out, prefix)
	}
	rect := `<rect x="0" y="0" width="128" height="128" fill="#000"></rect>`
	if !strings.Contains(out, rect) {
		t.Errorf("output %q does not contain %q", out, rect)
	}
}

func TestConstructorTags(t *testing.T) {
	tests := []struct {
		node *markup.Node
		tag  string
	}{
		{G(nil), "g"},
		{Defs(nil), "defs"},
		{Text(nil, "hi"), "text"},
		{Rect(nil), "rect"},
		{Circle(nil), "circle"},
		{Ellipse(nil), "ellipse"},
		{Line(nil), "line"},
		{Path(nil), "path"},
		{Polyline(nil), "polyline"},
		{Polygon(nil), "polygon"},
	}
	for _, tt := range tests {
		if tt.node.Tag != tt.tag {
			t.Errorf("Tag = %q, want %q", tt.node.Tag, tt.tag)
		}
	}
}

func TestGroupChildren(t *testing.T) {
	g := G(markup.A("opacity", 0.9),
		Circle(markup.A("cx", 95, "cy", 250, "r", 18)),
		nil,
		[]any{Circle(markup.A("r", 1)), false},
	)
	want := `<g opacity="0.9"><circle cx="95" cy="250" r="18"></circle><circle r="1"></circle></g>`
	if got := markup.Render(g); got != want {
		t.Errorf("G() = %q, want %q", got, want)
	}
}

func TestText(t *testing.T) {
	n := Text(markup.A("x", 60, "y", 178, "fontSize", 14), "write JS → render <SVG>")
	want := `<text x="60" y="178" font-size="14">write JS → render &lt;SVG&gt;</text>`
	if got := markup.Render(n); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}
