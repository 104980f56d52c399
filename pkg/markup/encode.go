package markup

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces &, <, >, " and ' with their entity forms.
func Escape(s string) string {
	return escaper.Replace(s)
}

// svgMixedCase lists SVG attributes whose canonical names are camelCase.
// They are written as given.
var svgMixedCase = map[string]bool{
	"attributeName":       true,
	"baseFrequency":       true,
	"clipPathUnits":       true,
	"diffuseConstant":     true,
	"filterUnits":         true,
	"gradientTransform":   true,
	"gradientUnits":       true,
	"kernelMatrix":        true,
	"keySplines":          true,
	"keyTimes":            true,
	"lengthAdjust":        true,
	"markerHeight":        true,
	"markerUnits":         true,
	"markerWidth":         true,
	"maskContentUnits":    true,
	"maskUnits":           true,
	"numOctaves":          true,
	"pathLength":          true,
	"patternContentUnits": true,
	"patternTransform":    true,
	"patternUnits":        true,
	"preserveAspectRatio": true,
	"primitiveUnits":      true,
	"refX":                true,
	"refY":                true,
	"repeatCount":         true,
	"repeatDur":           true,
	"spreadMethod":        true,
	"startOffset":         true,
	"stdDeviation":        true,
	"tableValues":         true,
	"textLength":          true,
	"viewBox":             true,
}

// AttrName converts an attribute key to its written form. className becomes
// class and SVG's own camelCase names such as viewBox are kept; every other
// key has each upper-case letter replaced by "-" and its lower-case form, so
// strokeWidth becomes stroke-width.
func AttrName(key string) string {
	if key == "className" {
		return "class"
	}
	if svgMixedCase[key] {
		return key
	}
	return hyphenate(key)
}

func hyphenate(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			b.WriteByte('-')
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EncodeAttrs returns the attribute list as written inside an opening tag,
// each attribute preceded by a space. It returns "" for an empty list.
func EncodeAttrs(a Attrs) string {
	var b strings.Builder
	writeAttrs(&b, a)
	return b.String()
}

func writeAttrs(b *strings.Builder, a Attrs) {
	for _, at := range a {
		if at.Value.Omitted() {
			continue
		}
		name := AttrName(at.Key)

		if name == "style" {
			// Only style lists and preformatted strings are meaningful here.
			var s string
			switch at.Value.Kind() {
			case KindStyle:
				s = at.Value.style.String()
			case KindString:
				s = at.Value.str
			}
			if s == "" {
				continue
			}
			writeAttr(b, name, s)
			continue
		}

		if at.Value.Kind() == KindBool {
			b.WriteByte(' ')
			b.WriteString(name)
			continue
		}

		writeAttr(b, name, at.Value.String())
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(Escape(value))
	b.WriteByte('"')
}
