// Package svg provides typed constructors for SVG elements.
//
// Each constructor pins the element tag and passes attributes and children
// through to [markup.H]. [SVG] additionally injects the SVG namespace and
// derives a viewBox from width and height; [LinearGradient] expands a list of
// stops into stop children.
//
//	doc := svg.SVG(markup.A("width", 128, "height", 128),
//	    svg.Rect(markup.A("x", 0, "y", 0, "width", 128, "height", 128, "fill", "#000")),
//	)
//	out := markup.Render(doc)
package svg

import (
	"github.com/imageforge/imageforge/pkg/markup"
)

// Namespace is the SVG XML namespace written on every root element.
const Namespace = "http://www.w3.org/2000/svg"

// SVG creates the root svg element. The xmlns attribute always comes first,
// followed by width, height and viewBox, then the remaining attributes in
// their given order. When viewBox is absent and both width and height are
// set, viewBox is "0 0 {width} {height}".
func SVG(attrs markup.Attrs, children ...any) *markup.Node {
	width, _ := attrs.Get("width")
	height, _ := attrs.Get("height")
	viewBox, _ := attrs.Get("viewBox")

	if !viewBox.Truthy() && width.Truthy() && height.Truthy() {
		viewBox = markup.StringValue("0 0 " + width.String() + " " + height.String())
	}

	root := markup.Attrs{
		{Key: "xmlns", Value: markup.StringValue(Namespace)},
		{Key: "width", Value: width},
		{Key: "height", Value: height},
		{Key: "viewBox", Value: viewBox},
	}
	return markup.H("svg", root.Merge(attrs.Without("width", "height", "viewBox")), children...)
}

// G creates a group.
func G(attrs markup.Attrs, children ...any) *markup.Node {
	return markup.H("g", attrs, children...)
}

// Defs creates a definitions block.
func Defs(attrs markup.Attrs, children ...any) *markup.Node {
	return markup.H("defs", attrs, children...)
}

// Text creates a text element. String children are escaped on output.
func Text(attrs markup.Attrs, children ...any) *markup.Node {
	return markup.H("text", attrs, children...)
}

// Rect creates a rect element.
func Rect(attrs markup.Attrs) *markup.Node { return markup.H("rect", attrs) }

// Circle creates a circle element.
func Circle(attrs markup.Attrs) *markup.Node { return markup.H("circle", attrs) }

// Ellipse creates an ellipse element.
func Ellipse(attrs markup.Attrs) *markup.Node { return markup.H("ellipse", attrs) }

// Line creates a line element.
func Line(attrs markup.Attrs) *markup.Node { return markup.H("line", attrs) }

// Path creates a path element. See package path for building the d attribute.
func Path(attrs markup.Attrs) *markup.Node { return markup.H("path", attrs) }

// Polyline creates a polyline element.
func Polyline(attrs markup.Attrs) *markup.Node { return markup.H("polyline", attrs) }

// Polygon creates a polygon element.
func Polygon(attrs markup.Attrs) *markup.Node { return markup.H("polygon", attrs) }
