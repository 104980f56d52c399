package script

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/markup"
	"github.com/imageforge/imageforge/pkg/svg"
)

func toFloat(fn string, v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "%s: expected a number, got %s", fn, typeName(v))
}

func toFloats(fn string, want int, args []any) ([]float64, error) {
	if len(args) != want {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: expected %d arguments, got %d", fn, want, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat(fn, a)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func toString(fn string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case markup.Text:
		return string(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "%s: expected a string, got %s", fn, typeName(v))
}

// toAttrs accepts the values a program may pass where attributes are
// expected: nothing, an ordered map literal, or a plain map.
func toAttrs(fn string, v any) (markup.Attrs, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil
	case markup.Attrs:
		return a, nil
	case map[string]any:
		keys := make([]string, 0, len(a))
		for k := range a {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(markup.Attrs, 0, len(keys))
		for _, k := range keys {
			out = append(out, markup.Attr{Key: k, Value: markup.ValueOf(a[k])})
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "%s: expected attributes, got %s", fn, typeName(v))
}

// splitAttrs separates the leading attributes argument from children.
func splitAttrs(fn string, params []any) (markup.Attrs, []any, error) {
	if len(params) == 0 {
		return nil, nil, nil
	}
	attrs, err := toAttrs(fn, params[0])
	if err != nil {
		return nil, nil, err
	}
	return attrs, params[1:], nil
}

func toStop(v any) (svg.Stop, error) {
	switch s := v.(type) {
	case svg.Stop:
		return s, nil
	case *svg.Stop:
		if s != nil {
			return *s, nil
		}
	default:
		attrs, err := toAttrs("linearGradient", v)
		if err != nil {
			return svg.Stop{}, err
		}
		var stop svg.Stop
		if off, ok := attrs.Get("offset"); ok {
			stop.Offset = off
		}
		if c, ok := attrs.Get("color"); ok {
			stop.Color = c
		}
		if op, ok := attrs.Get("opacity"); ok {
			stop.Opacity = op
		}
		return stop, nil
	}
	return svg.Stop{}, errors.New(errors.ErrCodeInvalidInput, "linearGradient: invalid stop")
}

func toStops(v any) ([]svg.Stop, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.New(errors.ErrCodeInvalidInput, "linearGradient: stops must be a list, got %s", typeName(v))
	}
	stops := make([]svg.Stop, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := toStop(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}

func truthy(v any) bool {
	return markup.ValueOf(v).Truthy()
}

// typeName describes a value the way error messages refer to it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string, markup.Text:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case *markup.Node, markup.Node:
		return "node"
	case markup.Attrs, map[string]any:
		return "map"
	case *Pen:
		return "pen"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Func:
		return "func"
	}
	return fmt.Sprintf("%T", v)
}
