package geom

import (
	"strings"
	"testing"
)

func TestRoundedRectPath(t *testing.T) {
	tests := []struct {
		name          string
		x, y, w, h, r float64
		want          string
	}{
		{
			name: "card",
			x:    40, y: 90, w: 400, h: 220, r: 26,
			want: "M 66 90 H 414 A 26 26 0 0 1 440 116 V 284 A 26 26 0 0 1 414 310 " +
				"H 66 A 26 26 0 0 1 40 284 V 116 A 26 26 0 0 1 66 90 Z",
		},
		{
			name: "radius clamped to half the short side",
			x:    0, y: 0, w: 100, h: 50, r: 1000,
			want: "M 25 0 H 75 A 25 25 0 0 1 100 25 V 25 A 25 25 0 0 1 75 50 " +
				"H 25 A 25 25 0 0 1 0 25 V 25 A 25 25 0 0 1 25 0 Z",
		},
		{
			name: "negative radius clamped to zero",
			x:    1, y: 2, w: 3, h: 4, r: -5,
			want: "M 1 2 H 4 A 0 0 0 0 1 4 2 V 6 A 0 0 0 0 1 4 6 " +
				"H 1 A 0 0 0 0 1 1 6 V 2 A 0 0 0 0 1 1 2 Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundedRectPath(tt.x, tt.y, tt.w, tt.h, tt.r); got != tt.want {
				t.Errorf("RoundedRectPath() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestRoundedRectPathArcsUseClampedRadius(t *testing.T) {
	d := RoundedRectPath(0, 0, 100, 50, 1000)
	if !strings.HasSuffix(d, " Z") {
		t.Errorf("path is not closed: %q", d)
	}
	tokens := strings.Fields(d)
	arcs := 0
	for i, tok := range tokens {
		if tok != "A" {
			continue
		}
		arcs++
		if tokens[i+1] != "25" || tokens[i+2] != "25" {
			t.Errorf("arc %d radius = %s %s, want 25 25", arcs, tokens[i+1], tokens[i+2])
		}
	}
	if arcs != 4 {
		t.Errorf("arc count = %d, want 4", arcs)
	}
}

func TestCenterOffset(t *testing.T) {
	got := CenterOffset(480, 800, 80, 100)
	if got != (Point{X: 200, Y: 350}) {
		t.Errorf("CenterOffset() = %+v, want {200 350}", got)
	}
	if got := CenterOffset(10, 10, 20, 20); got != (Point{X: -5, Y: -5}) {
		t.Errorf("CenterOffset() larger inner = %+v, want {-5 -5}", got)
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA(255, 255, 255, 0.06); got != "rgba(255,255,255,0.06)" {
		t.Errorf("RGBA() = %q", got)
	}
	if got := RGBA(125, 211, 252, 1); got != "rgba(125,211,252,1)" {
		t.Errorf("RGBA() = %q", got)
	}
}
