package svg

import (
	"strings"
	"testing"

	"github.com/imageforge/imageforge/pkg/markup"
)

func TestLinearGradient(t *testing.T) {
	n := LinearGradient("g", []Stop{
		{Offset: "0%", Color: "#fff"},
		{Offset: "100%", Color: "#000", Opacity: 0.5},
	}, nil)

	if len(n.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(n.Children))
	}

	want := `<linearGradient id="g">` +
		`<stop offset="0%" stop-color="#fff"></stop>` +
		`<stop offset="100%" stop-color="#000" stop-opacity="0.5"></stop>` +
		`</linearGradient>`
	if got := markup.Render(n); got != want {
		t.Errorf("LinearGradient() = %q\nwant                 %q", got, want)
	}
}

func TestLinearGradientAttrs(t *testing.T) {
	n := LinearGradient("bg", []Stop{{Offset: 0, Color: "#0f172a", Opacity: 0}},
		markup.A("x1", 0, "y1", 0, "x2", 0, "y2", 1))
	out := markup.Render(n)

	if !strings.HasPrefix(out, `<linearGradient id="bg" x1="0" y1="0" x2="0" y2="1">`) {
		t.Errorf("unexpected opening tag: %q", out)
	}
	if !strings.Contains(out, `stop-opacity="0"`) {
		t.Errorf("zero opacity should be written: %q", out)
	}
}

func TestStopNodeWithoutColor(t *testing.T) {
	tests := []struct {
		name string
		stop Stop
		want string
	}{
		{"offset only", Stop{Offset: "0%"}, `<stop offset="0%"></stop>`},
		{"opacity only", Stop{Offset: 1, Opacity: 0.25}, `<stop offset="1" stop-opacity="0.25"></stop>`},
		{"color", Stop{Offset: 0, Color: "red"}, `<stop offset="0" stop-color="red"></stop>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Render(StopNode(tt.stop)); got != tt.want {
				t.Errorf("StopNode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinearGradientNoStops(t *testing.T) {
	if got := markup.Render(LinearGradient("e", nil, nil)); got != `<linearGradient id="e"></linearGradient>` {
		t.Errorf("LinearGradient() = %q", got)
	}
}
