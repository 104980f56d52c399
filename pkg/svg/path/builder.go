package path

import (
	"strings"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/markup"
)

// Builder accumulates path data for a single path element. It is owned by
// one caller; it is not safe for concurrent use.
type Builder struct {
	attrs    markup.Attrs
	segments []string

	x, y           float64
	startX, startY float64
	positioned     bool

	err error
}

// New returns an empty builder. attrs are applied to the node produced by
// [Builder.Node].
func New(attrs markup.Attrs) *Builder {
	return &Builder{attrs: attrs.Clone()}
}

// MoveTo starts a new subpath at (x, y).
func (b *Builder) MoveTo(x, y float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("M", x, y)
	b.moveTo(x, y)
	return b
}

// LineTo draws a line to (x, y).
func (b *Builder) LineTo(x, y float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("L", x, y)
	b.penTo(x, y)
	return b
}

// HorizontalTo draws a horizontal line to x.
func (b *Builder) HorizontalTo(x float64) *Builder {
	if !b.require("H") {
		return b
	}
	b.emit("H", x)
	b.x = x
	return b
}

// VerticalTo draws a vertical line to y.
func (b *Builder) VerticalTo(y float64) *Builder {
	if !b.require("V") {
		return b
	}
	b.emit("V", y)
	b.y = y
	return b
}

// CubicTo draws a cubic Bézier curve to (x, y) with control points (x1, y1)
// and (x2, y2).
func (b *Builder) CubicTo(x1, y1, x2, y2, x, y float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("C", x1, y1, x2, y2, x, y)
	b.penTo(x, y)
	return b
}

// QuadTo draws a quadratic Bézier curve to (x, y) with control point (x1, y1).
func (b *Builder) QuadTo(x1, y1, x, y float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("Q", x1, y1, x, y)
	b.penTo(x, y)
	return b
}

// ArcTo draws an elliptical arc to (x, y). The flags are written as 1 or 0.
func (b *Builder) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("A", rx, ry, rotation, flag(largeArc), flag(sweep), x, y)
	b.penTo(x, y)
	return b
}

// Close closes the current subpath. The pen returns to the subpath start.
func (b *Builder) Close() *Builder {
	if b.err != nil {
		return b
	}
	b.segments = append(b.segments, "Z")
	if b.positioned {
		b.x, b.y = b.startX, b.startY
	}
	return b
}

// PenRight draws a line from the pen dx units along the x axis (negative
// goes left). It is written as an absolute L token.
func (b *Builder) PenRight(dx float64) *Builder {
	if !b.require("PenRight") {
		return b
	}
	return b.LineTo(b.x+dx, b.y)
}

// PenDown draws a line from the pen dy units along the y axis (negative
// goes up). It is written as an absolute L token.
func (b *Builder) PenDown(dy float64) *Builder {
	if !b.require("PenDown") {
		return b
	}
	return b.LineTo(b.x, b.y+dy)
}

// MoveBy starts a new subpath offset from the pen by (dx, dy). Without a
// current point the offset is taken from the origin.
func (b *Builder) MoveBy(dx, dy float64) *Builder {
	if b.err != nil {
		return b
	}
	b.emit("m", dx, dy)
	b.moveTo(b.x+dx, b.y+dy)
	return b
}

// LineBy draws a line offset from the pen by (dx, dy).
func (b *Builder) LineBy(dx, dy float64) *Builder {
	if !b.require("l") {
		return b
	}
	b.emit("l", dx, dy)
	b.x += dx
	b.y += dy
	return b
}

// HorizontalBy draws a horizontal line dx units from the pen.
func (b *Builder) HorizontalBy(dx float64) *Builder {
	if !b.require("h") {
		return b
	}
	b.emit("h", dx)
	b.x += dx
	return b
}

// VerticalBy draws a vertical line dy units from the pen.
func (b *Builder) VerticalBy(dy float64) *Builder {
	if !b.require("v") {
		return b
	}
	b.emit("v", dy)
	b.y += dy
	return b
}

// Pos returns the pen position. ok is false before any command has set one.
func (b *Builder) Pos() (x, y float64, ok bool) {
	return b.x, b.y, b.positioned
}

// Len returns the number of tokens written so far.
func (b *Builder) Len() int { return len(b.segments) }

// Err returns the first precondition error, if any.
func (b *Builder) Err() error { return b.err }

// Reset clears all tokens, the pen and any recorded error. The node
// attributes are kept.
func (b *Builder) Reset() *Builder {
	b.segments = b.segments[:0]
	b.x, b.y, b.startX, b.startY = 0, 0, 0, 0
	b.positioned = false
	b.err = nil
	return b
}

// String returns the path data: all tokens joined by a space.
func (b *Builder) String() string {
	return strings.Join(b.segments, " ")
}

// Node returns a path element whose d attribute is the path data, followed
// by the builder's attributes overlaid by each of extra in turn, key by key.
// The builder is left unchanged and Node may be called repeatedly.
func (b *Builder) Node(extra ...markup.Attrs) (*markup.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	a := markup.Attrs{{Key: "d", Value: markup.StringValue(b.String())}}.Merge(b.attrs.Without("d"))
	for _, e := range extra {
		a = a.Merge(e)
	}
	return markup.H("path", a), nil
}

func (b *Builder) require(cmd string) bool {
	if b.err != nil {
		return false
	}
	if !b.positioned {
		b.err = errors.New(errors.ErrCodePrecondition,
			"%s: no current point; start the path with MoveTo or LineTo", cmd)
		return false
	}
	return true
}

func (b *Builder) moveTo(x, y float64) {
	b.penTo(x, y)
	b.startX, b.startY = x, y
}

func (b *Builder) penTo(x, y float64) {
	if !b.positioned {
		b.startX, b.startY = x, y
	}
	b.x, b.y = x, y
	b.positioned = true
}

func (b *Builder) emit(cmd string, args ...float64) {
	var s strings.Builder
	s.WriteString(cmd)
	for _, a := range args {
		s.WriteByte(' ')
		s.WriteString(markup.FormatNumber(a))
	}
	b.segments = append(b.segments, s.String())
}

func flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
