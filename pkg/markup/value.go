package markup

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindNumber
	KindBool
	KindStyle
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindStyle:
		return "style"
	}
	return "none"
}

// Value is an attribute value: a string, a number, a boolean or a style.
// The zero Value is KindNone and is never written.
type Value struct {
	kind  Kind
	str   string
	num   float64
	flag  bool
	style Style
}

// StringValue returns a string attribute value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a numeric attribute value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue returns a boolean attribute value. true is written as a presence
// attribute, false omits the attribute.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// StyleValue returns a style attribute value.
func StyleValue(s Style) Value { return Value{kind: KindStyle, style: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Omitted reports whether the attribute holding v is left out of the output.
func (v Value) Omitted() bool {
	return v.kind == KindNone || (v.kind == KindBool && !v.flag)
}

// Truthy reports whether v is truthy in the playground's sense: a non-empty
// string, a non-zero number, true, or a style.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBool:
		return v.flag
	case KindStyle:
		return true
	}
	return false
}

// Style returns the style held by v, if any.
func (v Value) Style() (Style, bool) {
	return v.style, v.kind == KindStyle
}

// String returns the unescaped text form of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindStyle:
		return v.style.String()
	}
	return ""
}

// FormatNumber formats f with the shortest decimal representation that
// round-trips: 128, 0.5, 33.6. Negative zero is written as 0. Magnitudes of
// at least 1e21 or below 1e-6 use exponent form with an explicit sign and no
// padding: 1e+21, 1.5e-7.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValueOf converts a Go value into a [Value].
//
// nil becomes KindNone, strings KindString, booleans KindBool and every
// integer and float kind KindNumber. [Style], [Attrs] and map[string]any
// become KindStyle; map keys are sorted since Go maps carry no order.
// Anything else is formatted with fmt and stored as a string.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return StringValue(x)
	case Text:
		return StringValue(string(x))
	case bool:
		return BoolValue(x)
	case int:
		return NumberValue(float64(x))
	case int8:
		return NumberValue(float64(x))
	case int16:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case uint:
		return NumberValue(float64(x))
	case uint8:
		return NumberValue(float64(x))
	case uint16:
		return NumberValue(float64(x))
	case uint32:
		return NumberValue(float64(x))
	case uint64:
		return NumberValue(float64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case Style:
		return StyleValue(x)
	case Attrs:
		return StyleValue(x.AsStyle())
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s := make(Style, 0, len(keys))
		for _, k := range keys {
			s = append(s, StyleProp{Name: k, Value: ValueOf(x[k])})
		}
		return StyleValue(s)
	case fmt.Stringer:
		return StringValue(x.String())
	}
	return StringValue(fmt.Sprint(v))
}

// StyleProp is one property of a [Style].
type StyleProp struct {
	Name  string
	Value Value
}

// Style is an ordered set of CSS properties written into a style attribute.
type Style []StyleProp

// S builds a Style from alternating name/value pairs. It panics if a name is
// not a string or a value is missing.
func S(kv ...any) Style {
	if len(kv)%2 != 0 {
		panic("markup.S: odd number of arguments")
	}
	s := make(Style, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("markup.S: property name %v is not a string", kv[i]))
		}
		s = append(s, StyleProp{Name: name, Value: ValueOf(kv[i+1])})
	}
	return s
}

// String returns the declaration list, e.g. "fill:red;stroke-width:2".
// Properties with no value or an empty string value are skipped.
func (s Style) String() string {
	var b strings.Builder
	for _, p := range s {
		if p.Value.kind == KindNone || (p.Value.kind == KindString && p.Value.str == "") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(hyphenate(p.Name))
		b.WriteByte(':')
		b.WriteString(p.Value.String())
	}
	return b.String()
}
