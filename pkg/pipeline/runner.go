package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imageforge/imageforge/pkg/cache"
	"github.com/imageforge/imageforge/pkg/inspect"
	"github.com/imageforge/imageforge/pkg/observability"
	"github.com/imageforge/imageforge/pkg/raster"
	"github.com/imageforge/imageforge/pkg/script"
)

const cacheKeyType = "artifact"

// Runner executes programs with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Evaluator *script.Evaluator
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Evaluator: &script.Evaluator{},
	}
}

// Execute evaluates the program and exports every requested format, using
// cached artifacts when all of them are available.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{
		ProgramHash: cache.Hash([]byte(opts.Program)),
		Artifacts:   make(map[string][]byte),
	}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, result.ProgramHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.Hit = true
			r.finish(result)
			logger.Debug("served from cache", "hash", short(result.ProgramHash), "bytes", result.Stats.Bytes)
			return result, nil
		}
	}

	// Evaluate
	evalStart := time.Now()
	observability.Pipeline().OnEvalStart(ctx, result.ProgramHash)
	res, err := r.evaluator().Run(ctx, opts.Program)
	result.Stats.EvalTime = time.Since(evalStart)
	observability.Pipeline().OnEvalComplete(ctx, result.ProgramHash, result.Stats.EvalTime, err)
	if err != nil {
		return nil, err
	}
	result.Root = res.Root

	logger.Debug("evaluated program",
		"hash", short(result.ProgramHash),
		"duration", result.Stats.EvalTime)

	// Export
	exportStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.export(ctx, format, res.SVG, opts)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.ExportTime = time.Since(exportStart)
	r.finish(result)

	// Cache each format
	for format, data := range result.Artifacts {
		key := r.Keyer.ArtifactKey(result.ProgramHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	}

	logger.Info("rendered",
		"formats", opts.Formats,
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.EvalTime+result.Stats.ExportTime)

	return result, nil
}

// Render is a convenience wrapper that returns only the SVG output.
func (r *Runner) Render(ctx context.Context, program string) (string, error) {
	res, err := r.Execute(ctx, Options{Program: program})
	if err != nil {
		return "", err
	}
	return res.SVG(), nil
}

func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, cacheKeyType)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) export(ctx context.Context, format, svg string, opts Options) ([]byte, error) {
	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, format)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = []byte(svg)
	case FormatPNG:
		data, err = raster.PNG([]byte(svg), raster.Options{Scale: opts.Scale})
	default:
		err = ValidateFormat(format)
	}

	observability.Pipeline().OnExportComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func (r *Runner) finish(result *Result) {
	for _, data := range result.Artifacts {
		result.Stats.Bytes += len(data)
	}
	if svg, ok := result.Artifacts[FormatSVG]; ok {
		result.Size = inspect.ParseSize(string(svg))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) evaluator() *script.Evaluator {
	if r.Evaluator != nil {
		return r.Evaluator
	}
	return &script.Evaluator{}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
