// Package markup provides the document tree used to build SVG output.
//
// # Overview
//
// A document is a tree of [Node] values. Each node has a tag, an ordered
// attribute list ([Attrs]) and an ordered list of children, where each child
// is either escaped text ([Text]) or another node. Trees are built bottom-up
// with [H] and serialized with [Render]:
//
//	doc := markup.H("g", markup.A("opacity", 0.9),
//	    markup.H("circle", markup.A("cx", 95, "cy", 250, "r", 18)),
//	    "label",
//	)
//	out := markup.Render(doc)
//
// # Children
//
// [H] flattens nested slices of children to any depth and drops nil and false
// entries, so conditional composition reads naturally:
//
//	var grid any // nil unless showGrid
//	if showGrid {
//	    grid = gridNode
//	}
//	markup.H("g", nil, title, grid, []any{a, b, []any{c}})
//
// # Attributes
//
// Attribute values are a tagged union ([Value]) of string, number, boolean
// and style. camelCase keys are written hyphenated (strokeWidth becomes
// stroke-width) and className is written as class. SVG's own camelCase
// attributes such as viewBox keep their case. nil and false values are
// omitted; true produces a presence attribute. A style value is written as
// "prop:value" pairs joined by ";" and omitted when empty.
//
// # Serialization
//
// Every element is written with an explicit closing tag, including empty
// ones. Attribute values and text children are entity-escaped; a raw string
// passed directly to [Render] is returned unchanged.
package markup
