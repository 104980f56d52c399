// Package script evaluates imageforge programs.
//
// A program is an expr expression (https://expr-lang.org) that builds a
// document with the node DSL and returns it rendered as an SVG string:
//
//	let W = 128;
//	render(svg({width: W, height: W},
//	  rect({x: 0, y: 0, width: W, height: W, fill: "#000"})))
//
// The DSL is injected as functions: h, render, svg, g, defs, rect, circle,
// ellipse, line, path, polyline, polygon, text, rr, rgba, centerXY,
// linearGradient, stop and pathBuilder. Map literals are ordered: keys are
// emitted as attributes in the order they appear in the source.
//
// pathBuilder returns a pen. Its methods mirror the path builder commands
// and can be chained:
//
//	pathBuilder({fill: "none"}).M(24, 104).PH(80).PV(-40).Z().Node()
//
// Each program runs in a fresh environment, so an Evaluator is safe for
// concurrent use.
package script
