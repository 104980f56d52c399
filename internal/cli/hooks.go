package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imageforge/imageforge/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events at debug level. Events
// go to the logger carried by the event's context, so commands that own the
// terminal can silence them.
type logHooks struct {
	fallback *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)

// registerHooks installs logHooks as the global observability hooks.
func registerHooks(l *log.Logger) {
	h := logHooks{fallback: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) logger(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	if h.fallback != nil {
		return h.fallback
	}
	return log.Default()
}

func (h logHooks) OnEvalStart(ctx context.Context, programHash string) {
	h.logger(ctx).Debug("eval start", "hash", shortHash(programHash))
}

func (h logHooks) OnEvalComplete(ctx context.Context, programHash string, d time.Duration, err error) {
	if err != nil {
		h.logger(ctx).Debug("eval failed", "hash", shortHash(programHash), "duration", d, "err", err)
		return
	}
	h.logger(ctx).Debug("eval done", "hash", shortHash(programHash), "duration", d)
}

func (h logHooks) OnExportStart(context.Context, string) {}

func (h logHooks) OnExportComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger(ctx).Debug("export failed", "format", format, "err", err)
		return
	}
	h.logger(ctx).Debug("exported", "format", format, "bytes", size, "duration", d)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger(ctx).Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger(ctx).Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger(ctx).Debug("fetch", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	h.logger(ctx).Debug("fetched", "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger(ctx).Debug("fetch failed", "host", host, "path", path, "err", err)
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
