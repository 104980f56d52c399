package svg

import "github.com/imageforge/imageforge/pkg/markup"

// Stop is one colour stop of a gradient. Offset, Color and Opacity accept
// anything [markup.ValueOf] does, typically a number or a string. A nil Color
// or Opacity leaves stop-color or stop-opacity out.
type Stop struct {
	Offset  any
	Color   any
	Opacity any
}

// LinearGradient creates a linearGradient with the given id, one stop child
// per entry of stops, and the extra attributes after id.
//
//	svg.LinearGradient("g", []svg.Stop{
//	    {Offset: "0%", Color: "#0f172a"},
//	    {Offset: "100%", Color: "#020617", Opacity: 0.5},
//	}, markup.A("x1", 0, "y1", 0, "x2", 0, "y2", 1))
func LinearGradient(id string, stops []Stop, attrs markup.Attrs) *markup.Node {
	children := make([]*markup.Node, 0, len(stops))
	for _, s := range stops {
		children = append(children, StopNode(s))
	}
	a := markup.Attrs{{Key: "id", Value: markup.StringValue(id)}}
	return markup.H("linearGradient", a.Merge(attrs), children)
}

// StopNode creates the stop element for s.
func StopNode(s Stop) *markup.Node {
	a := markup.A("offset", s.Offset)
	if s.Color != nil {
		a = a.Set("stop-color", s.Color)
	}
	if s.Opacity != nil {
		a = a.Set("stop-opacity", s.Opacity)
	}
	return markup.H("stop", a)
}
