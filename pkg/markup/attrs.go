package markup

import "fmt"

// Attr is a single attribute as supplied by the caller, before name
// conversion and escaping.
type Attr struct {
	Key   string
	Value Value
}

// Attrs is an ordered attribute list. Attributes are written in slice order.
type Attrs []Attr

// A builds Attrs from alternating key/value pairs, converting values with
// [ValueOf]. It panics if a key is not a string or a value is missing.
//
//	markup.A("x", 0, "y", 0, "fill", "#000", "hidden", false)
func A(kv ...any) Attrs {
	if len(kv)%2 != 0 {
		panic("markup.A: odd number of arguments")
	}
	a := make(Attrs, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("markup.A: key %v is not a string", kv[i]))
		}
		a = a.Set(key, kv[i+1])
	}
	return a
}

// Get returns the value stored under key.
func (a Attrs) Get(key string) (Value, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present, whatever its value.
func (a Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set stores v under key, replacing an existing entry in place or appending
// a new one. Like append, the result must be used.
func (a Attrs) Set(key string, v any) Attrs {
	val := ValueOf(v)
	for i := range a {
		if a[i].Key == key {
			a[i].Value = val
			return a
		}
	}
	return append(a, Attr{Key: key, Value: val})
}

// Without returns a copy of a with the given keys removed.
func (a Attrs) Without(keys ...string) Attrs {
	out := make(Attrs, 0, len(a))
next:
	for _, at := range a {
		for _, k := range keys {
			if at.Key == k {
				continue next
			}
		}
		out = append(out, at)
	}
	return out
}

// Merge returns a new list holding a overlaid by over: keys present in both
// keep their position in a and take the value from over, keys only in over
// are appended in their order.
func (a Attrs) Merge(over Attrs) Attrs {
	out := a.Clone()
	for _, at := range over {
		out = out.Set(at.Key, at.Value)
	}
	return out
}

// Clone returns a copy of a that shares no backing array with it.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// AsStyle reinterprets the list as style properties, keeping order.
func (a Attrs) AsStyle() Style {
	s := make(Style, 0, len(a))
	for _, at := range a {
		s = append(s, StyleProp{Name: at.Key, Value: at.Value})
	}
	return s
}
