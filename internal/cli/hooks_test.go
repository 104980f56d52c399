package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooksUseContextLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	h := logHooks{fallback: newLogger(&fallback, log.DebugLevel)}

	ctx := withLogger(context.Background(), newLogger(&scoped, log.DebugLevel))
	h.OnEvalComplete(ctx, "0123456789abcdef0123", 5*time.Millisecond, nil)
	h.OnCacheHit(context.Background(), "artifact")

	if !strings.Contains(scoped.String(), "eval done") || !strings.Contains(scoped.String(), "0123456789ab") {
		t.Errorf("context logger output = %q", scoped.String())
	}
	if strings.Contains(scoped.String(), "0123456789abc") {
		t.Error("hash should be shortened to 12 characters")
	}
	if !strings.Contains(fallback.String(), "cache hit") {
		t.Errorf("fallback logger output = %q", fallback.String())
	}
}

func TestLogHooksDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{fallback: newLogger(&buf, log.InfoLevel)}

	ctx := context.Background()
	h.OnExportComplete(ctx, "png", 10, time.Millisecond, errors.New("boom"))
	h.OnResponse(ctx, "GET", "example.com", "/card.expr", 200, time.Millisecond)

	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}
