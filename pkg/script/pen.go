package script

import (
	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/markup"
	"github.com/imageforge/imageforge/pkg/svg/path"
)

// Pen exposes a path builder to programs. Every command returns the pen so
// calls chain; a command that cannot run fails the program at that call.
type Pen struct {
	b  *path.Builder
	st *runState
}

func newPen(st *runState, attrs markup.Attrs) *Pen {
	return &Pen{b: path.New(attrs), st: st}
}

func (p *Pen) apply(cmd string, n int, args []any, fn func(v []float64)) (*Pen, error) {
	v, err := toFloats(cmd, n, args)
	if err != nil {
		return nil, p.st.fail(err)
	}
	fn(v)
	if err := p.b.Err(); err != nil {
		return nil, p.st.fail(err)
	}
	return p, nil
}

// M moves to (x, y).
func (p *Pen) M(args ...any) (*Pen, error) {
	return p.apply("M", 2, args, func(v []float64) { p.b.MoveTo(v[0], v[1]) })
}

// L draws a line to (x, y).
func (p *Pen) L(args ...any) (*Pen, error) {
	return p.apply("L", 2, args, func(v []float64) { p.b.LineTo(v[0], v[1]) })
}

// H draws a horizontal line to x.
func (p *Pen) H(args ...any) (*Pen, error) {
	return p.apply("H", 1, args, func(v []float64) { p.b.HorizontalTo(v[0]) })
}

// V draws a vertical line to y.
func (p *Pen) V(args ...any) (*Pen, error) {
	return p.apply("V", 1, args, func(v []float64) { p.b.VerticalTo(v[0]) })
}

// C draws a cubic Bézier curve.
func (p *Pen) C(args ...any) (*Pen, error) {
	return p.apply("C", 6, args, func(v []float64) { p.b.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5]) })
}

// Q draws a quadratic Bézier curve.
func (p *Pen) Q(args ...any) (*Pen, error) {
	return p.apply("Q", 4, args, func(v []float64) { p.b.QuadTo(v[0], v[1], v[2], v[3]) })
}

// A draws an elliptical arc: A(rx, ry, rotation, largeArc, sweep, x, y).
// The two flags accept booleans or numbers.
func (p *Pen) A(args ...any) (*Pen, error) {
	if len(args) != 7 {
		return nil, p.st.fail(errors.New(errors.ErrCodeInvalidInput, "A: expected 7 arguments, got %d", len(args)))
	}
	nums := []any{args[0], args[1], args[2], args[5], args[6]}
	large, sweep := truthy(args[3]), truthy(args[4])
	return p.apply("A", 5, nums, func(v []float64) { p.b.ArcTo(v[0], v[1], v[2], large, sweep, v[3], v[4]) })
}

// Z closes the current subpath.
func (p *Pen) Z() (*Pen, error) {
	p.b.Close()
	return p, nil
}

// PH moves the pen right by dx, drawing a line.
func (p *Pen) PH(args ...any) (*Pen, error) {
	return p.apply("PH", 1, args, func(v []float64) { p.b.PenRight(v[0]) })
}

// PV moves the pen down by dy, drawing a line.
func (p *Pen) PV(args ...any) (*Pen, error) {
	return p.apply("PV", 1, args, func(v []float64) { p.b.PenDown(v[0]) })
}

// RM is a relative move.
func (p *Pen) RM(args ...any) (*Pen, error) {
	return p.apply("RM", 2, args, func(v []float64) { p.b.MoveBy(v[0], v[1]) })
}

// RL is a relative line.
func (p *Pen) RL(args ...any) (*Pen, error) {
	return p.apply("RL", 2, args, func(v []float64) { p.b.LineBy(v[0], v[1]) })
}

// RH is a relative horizontal line.
func (p *Pen) RH(args ...any) (*Pen, error) {
	return p.apply("RH", 1, args, func(v []float64) { p.b.HorizontalBy(v[0]) })
}

// RV is a relative vertical line.
func (p *Pen) RV(args ...any) (*Pen, error) {
	return p.apply("RV", 1, args, func(v []float64) { p.b.VerticalBy(v[0]) })
}

// X returns the pen's x coordinate, 0 before the first command.
func (p *Pen) X() float64 {
	x, _, _ := p.b.Pos()
	return x
}

// Y returns the pen's y coordinate, 0 before the first command.
func (p *Pen) Y() float64 {
	_, y, _ := p.b.Pos()
	return y
}

// D returns the path data accumulated so far.
func (p *Pen) D() string { return p.b.String() }

// Node finalizes the pen into a path element.
func (p *Pen) Node() (*markup.Node, error) {
	n, err := p.b.Node()
	return n, p.st.fail(err)
}

// NodeWith finalizes the pen into a path element, with attrs overriding
// the ones the pen was created with.
func (p *Pen) NodeWith(attrs any) (*markup.Node, error) {
	a, err := toAttrs("NodeWith", attrs)
	if err != nil {
		return nil, p.st.fail(err)
	}
	n, err := p.b.Node(a)
	return n, p.st.fail(err)
}
