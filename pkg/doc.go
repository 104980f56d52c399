// Package pkg provides the libraries behind imageforge, a playground for
// scripts that build SVG documents.
//
// # Overview
//
// A program calls small node constructors (svg, g, rect, path, ...) and
// hands the finished tree to render, which serializes it to markup. The pkg
// directory is organized in three layers:
//
//  1. The DSL: [markup] (nodes, attribute encoding, serialization), [svg]
//     (typed element constructors), [svg/path] (the stateful path builder)
//     and [geom] (rounded rectangles, centering, colours).
//  2. Running programs: [script] (expr-based evaluator with the DSL
//     injected), [source] (file and URL loading with polling), [raster]
//     (PNG export) and [inspect] (Graphviz views of a tree, size parsing).
//  3. Orchestration: [pipeline] (evaluate, export, cache) on top of
//     [cache], with [errors], [observability] and [buildinfo] shared by all.
//
// # Architecture
//
//	program text ([source])
//	         ↓
//	    [script] evaluates it; constructors build a [markup.Node] tree
//	         ↓
//	    [markup.Render] serializes the tree to an SVG string
//	         ↓
//	    [pipeline] exports SVG and PNG ([raster]), caching by content hash
//
// # Quick Start
//
// Build and render a document directly:
//
//	import (
//	    "github.com/imageforge/imageforge/pkg/markup"
//	    "github.com/imageforge/imageforge/pkg/svg"
//	)
//
//	doc := svg.SVG(markup.A("width", 128, "height", 128),
//	    svg.Circle(markup.A("cx", 64, "cy", 64, "r", 48, "fill", "#6cf")),
//	)
//	out := markup.Render(doc)
//
// Or evaluate a program:
//
//	var ev script.Evaluator
//	out, err := ev.Eval(ctx, `render(svg({width: 16, height: 16}, circle({cx: 8, cy: 8, r: 4})))`)
package pkg
