// Package raster converts SVG documents to PNG.
//
// Rasterization supports the subset of SVG that oksvg understands: paths,
// basic shapes, groups, transforms and linear gradients. Text is not
// drawn.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/imageforge/imageforge/pkg/errors"
)

// MaxSide bounds the width and height of the output image in pixels.
const MaxSide = 8192

// Options control rasterization.
type Options struct {
	// Scale multiplies the document's viewBox size. Zero means 1.
	Scale float64

	// Background fills the image before drawing. Nil leaves it
	// transparent.
	Background color.Color
}

// PNG rasterizes svg and returns the encoded PNG. The image size is the
// viewBox size times opts.Scale, rounded up.
func PNG(svg []byte, opts Options) ([]byte, error) {
	img, err := Image(svg, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Image rasterizes svg into an RGBA image.
func Image(svg []byte, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid scale %v", opts.Scale)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
	}

	w := int(math.Ceil(icon.ViewBox.W * scale))
	h := int(math.Ceil(icon.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"svg has no size; set width and height or a viewBox")
	}
	if w > MaxSide || h > MaxSide {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"image too large (%dx%d, max %d per side)", w, h, MaxSide)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
