// Package inspect helps debug rendered documents.
//
// [ToDOT] turns a node tree into a Graphviz graph, one box per element and
// one note per text child, and [RenderSVG] lays it out in-process with
// go-graphviz. [ParseSize] reads the width, height and viewBox of a
// rendered document's root tag for status displays, and [Summarize] counts
// elements by tag.
//
//	dot := inspect.ToDOT(res.Root, inspect.Options{Attrs: true})
//	svg, err := inspect.RenderSVG(ctx, dot)
package inspect
