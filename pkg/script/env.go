package script

import (
	"github.com/expr-lang/expr"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/geom"
	"github.com/imageforge/imageforge/pkg/markup"
	"github.com/imageforge/imageforge/pkg/svg"
)

// runState is private to one evaluation.
type runState struct {
	err      error
	rendered map[string]*markup.Node
}

func newRunState() *runState {
	return &runState{rendered: make(map[string]*markup.Node)}
}

// fail records the first error raised by a DSL call and returns err.
func (st *runState) fail(err error) error {
	if st != nil && err != nil && st.err == nil {
		st.err = err
	}
	return err
}

type dslFunc func(params []any) (any, error)

func (st *runState) function(name string, fn dslFunc) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		v, err := fn(params)
		if err != nil {
			return nil, st.fail(err)
		}
		return v, nil
	})
}

func container(name string, build func(markup.Attrs, ...any) *markup.Node) dslFunc {
	return func(params []any) (any, error) {
		attrs, children, err := splitAttrs(name, params)
		if err != nil {
			return nil, err
		}
		return build(attrs, children...), nil
	}
}

func shape(name string, build func(markup.Attrs) *markup.Node) dslFunc {
	return func(params []any) (any, error) {
		attrs, _, err := splitAttrs(name, params)
		if err != nil {
			return nil, err
		}
		return build(attrs), nil
	}
}

func (st *runState) options() []expr.Option {
	opts := []expr.Option{
		expr.Env(map[string]any{}),
		expr.Patch(orderedMaps{}),
		st.function(attrsFunc, attrsLiteral),
		st.function("h", func(params []any) (any, error) {
			if len(params) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "h: missing tag")
			}
			tag, err := toString("h", params[0])
			if err != nil {
				return nil, err
			}
			attrs, children, err := splitAttrs("h", params[1:])
			if err != nil {
				return nil, err
			}
			return markup.H(tag, attrs, children...), nil
		}),
		st.function("render", func(params []any) (any, error) {
			if len(params) != 1 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "render: expected 1 argument, got %d", len(params))
			}
			out := markup.Render(params[0])
			switch n := params[0].(type) {
			case *markup.Node:
				st.rendered[out] = n
			case markup.Node:
				st.rendered[out] = &n
			}
			return out, nil
		}),
		st.function("svg", container("svg", svg.SVG)),
		st.function("g", container("g", svg.G)),
		st.function("defs", container("defs", svg.Defs)),
		st.function("text", container("text", svg.Text)),
		st.function("rect", shape("rect", svg.Rect)),
		st.function("circle", shape("circle", svg.Circle)),
		st.function("ellipse", shape("ellipse", svg.Ellipse)),
		st.function("line", shape("line", svg.Line)),
		st.function("path", shape("path", svg.Path)),
		st.function("polyline", shape("polyline", svg.Polyline)),
		st.function("polygon", shape("polygon", svg.Polygon)),
		st.function("rr", func(params []any) (any, error) {
			v, err := toFloats("rr", 5, params)
			if err != nil {
				return nil, err
			}
			return geom.RoundedRectPath(v[0], v[1], v[2], v[3], v[4]), nil
		}),
		st.function("rgba", func(params []any) (any, error) {
			v, err := toFloats("rgba", 4, params)
			if err != nil {
				return nil, err
			}
			return geom.RGBA(int(v[0]), int(v[1]), int(v[2]), v[3]), nil
		}),
		st.function("centerXY", func(params []any) (any, error) {
			v, err := toFloats("centerXY", 4, params)
			if err != nil {
				return nil, err
			}
			p := geom.CenterOffset(v[0], v[1], v[2], v[3])
			return map[string]any{"x": p.X, "y": p.Y}, nil
		}),
		st.function("linearGradient", linearGradient),
		st.function("stop", func(params []any) (any, error) {
			if len(params) < 2 || len(params) > 3 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "stop: expected offset, color and an optional opacity")
			}
			color, err := toString("stop", params[1])
			if err != nil {
				return nil, err
			}
			s := svg.Stop{Offset: params[0], Color: color}
			if len(params) == 3 {
				s.Opacity = params[2]
			}
			return s, nil
		}),
		st.function("pathBuilder", func(params []any) (any, error) {
			attrs, _, err := splitAttrs("pathBuilder", params)
			if err != nil {
				return nil, err
			}
			return newPen(st, attrs), nil
		}),
	}
	return opts
}

// attrsLiteral builds ordered attributes from alternating keys and values.
// Map literals in programs are rewritten to call it.
func attrsLiteral(params []any) (any, error) {
	a := make(markup.Attrs, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		key, ok := params[i].(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "map keys must be strings, got %s", typeName(params[i]))
		}
		a = a.Set(key, params[i+1])
	}
	return a, nil
}

func linearGradient(params []any) (any, error) {
	if len(params) < 2 || len(params) > 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "linearGradient: expected id, stops and optional attributes")
	}
	id, err := toString("linearGradient", params[0])
	if err != nil {
		return nil, err
	}
	stops, err := toStops(params[1])
	if err != nil {
		return nil, err
	}
	var attrs markup.Attrs
	if len(params) == 3 {
		if attrs, err = toAttrs("linearGradient", params[2]); err != nil {
			return nil, err
		}
	}
	return svg.LinearGradient(id, stops, attrs), nil
}
