// Package path builds SVG path data incrementally.
//
// A [Builder] tracks a pen position and appends one path token per command.
// Commands are chained:
//
//	b := path.New(markup.A("fill", "none", "stroke", "#9F8642", "strokeWidth", 3))
//	b.MoveTo(24, 104).PenRight(80).PenDown(-33.6).PenRight(-80).Close()
//	node, err := b.Node()
//
// # Pen state
//
// A new builder has no current point. MoveTo, LineTo, CubicTo, QuadTo, ArcTo
// and MoveBy establish one. HorizontalTo, VerticalTo, PenRight, PenDown and
// the relative line commands need a current point; issuing them earlier
// records a PRECONDITION error naming the command and appends nothing. After
// an error every further command is ignored until [Builder.Reset], and
// [Builder.Err] and [Builder.Node] report it.
//
// # Pen sugar
//
// PenRight and PenDown move the pen along one axis by a signed delta and are
// written as absolute L tokens, so the tracked position and the emitted data
// always agree.
package path
