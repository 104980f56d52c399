// Package pipeline runs imageforge programs end to end.
//
// A run evaluates the program, checks that it produced SVG and exports the
// requested formats. Artifacts are cached by program content hash, so
// re-rendering an unchanged program (the common case while watching a file)
// costs one cache lookup. The CLI and the HTTP server share this package so
// both behave the same.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Program: src,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	    Scale:   2,
//	})
//	if err != nil {
//	    return err
//	}
//	png := res.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/imageforge/imageforge/pkg/cache"
	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/inspect"
	"github.com/imageforge/imageforge/pkg/markup"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 16.0

	// DefaultOutputName is the base name of exported files.
	DefaultOutputName = "imageforge-output"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// Options configures a pipeline run. It doubles as the HTTP request body.
type Options struct {
	Program string   `json:"program"`
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ProgramHash is the content hash of the program.
	ProgramHash string

	// Root is the rendered document tree. It is nil when the artifacts came
	// from the cache or the program returned a hand-written string.
	Root *markup.Node

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Size is the root tag's width, height and viewBox.
	Size inspect.Size

	Stats     Stats
	CacheInfo CacheInfo
}

// SVG returns the SVG artifact as a string.
func (r *Result) SVG() string {
	return string(r.Artifacts[FormatSVG])
}

// Stats contains run statistics.
type Stats struct {
	EvalTime   time.Duration
	ExportTime time.Duration
	Bytes      int
}

// CacheInfo tracks cache use.
type CacheInfo struct {
	Hit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Program == "" {
		return errors.New(errors.ErrCodeInvalidProgram, "program is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %v], got %v", MaxScale, o.Scale)
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for a format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// FileName returns the export file name for format, e.g.
// "imageforge-output.svg".
func FileName(base, format string) string {
	if base == "" {
		base = DefaultOutputName
	}
	return base + "." + format
}
