// Package geom provides small geometry helpers for building documents:
// rounded-rectangle outlines, centering offsets and colour strings.
package geom

import (
	"fmt"
	"math"

	"github.com/imageforge/imageforge/pkg/markup"
	"github.com/imageforge/imageforge/pkg/svg/path"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// RoundedRectPath returns closed path data for a w×h rectangle at (x, y)
// with corners of radius r. r is clamped to [0, min(w, h)/2].
//
// The outline runs clockwise from the end of the top-left corner: top edge,
// top-right arc, right edge, bottom-right arc, bottom edge, bottom-left arc,
// left edge, top-left arc, close.
func RoundedRectPath(x, y, w, h, r float64) string {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))

	b := path.New(nil)
	b.MoveTo(x+r, y).
		HorizontalTo(x+w-r).
		ArcTo(r, r, 0, false, true, x+w, y+r).
		VerticalTo(y+h-r).
		ArcTo(r, r, 0, false, true, x+w-r, y+h).
		HorizontalTo(x+r).
		ArcTo(r, r, 0, false, true, x, y+h-r).
		VerticalTo(y+r).
		ArcTo(r, r, 0, false, true, x+r, y).
		Close()
	return b.String()
}

// CenterOffset returns the offset that centers an inner box inside an outer
// one.
func CenterOffset(outerW, outerH, innerW, innerH float64) Point {
	return Point{X: (outerW - innerW) / 2, Y: (outerH - innerH) / 2}
}

// RGBA returns a CSS rgba() colour, e.g. "rgba(255,255,255,0.06)".
func RGBA(r, g, b int, a float64) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, markup.FormatNumber(a))
}
