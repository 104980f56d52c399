// Package source loads program text from local files or http(s) URLs and
// watches it for changes.
//
// URL loads always bypass caches: a "t" query parameter with the current
// time is added and Cache-Control: no-store is sent, so an edit saved on
// the serving side shows up on the next poll.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imageforge/imageforge/pkg/buildinfo"
	"github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/observability"
)

const (
	// DefaultAttempts is how often a URL load is tried before giving up.
	DefaultAttempts = 3

	// DefaultRetryDelay is the delay before the first retry.
	DefaultRetryDelay = 200 * time.Millisecond

	// maxProgramBytes bounds a downloaded program; larger bodies are
	// truncated and rejected by the evaluator's own size check.
	maxProgramBytes = 4 << 20
)

// Loader reads programs. The zero value loads with http.DefaultClient and
// DefaultAttempts.
type Loader struct {
	Client     *http.Client
	Attempts   int
	RetryDelay time.Duration
	Logger     *log.Logger

	// now is replaced in tests.
	now func() time.Time
}

// Load returns the program at location, which is either a file path or an
// http(s) URL.
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	if errors.IsURL(location) {
		return l.loadURL(ctx, location, l.attempts())
	}
	return loadFile(location)
}

func loadFile(path string) (string, error) {
	if err := errors.ValidateSourcePath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.New(errors.ErrCodeFileNotFound, "program not found: %s", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return string(data), nil
}

func (l *Loader) loadURL(ctx context.Context, rawURL string, attempts int) (string, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return "", err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Path != "" {
		if err := errors.ValidateSourcePath(u.Path); err != nil {
			return "", err
		}
	}

	var body string
	err = retry(ctx, attempts, l.retryDelay(), func() error {
		var err error
		body, err = l.fetch(ctx, u)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(errors.ErrCodeTimeout, err, "load %s", u.Path)
		}
		return "", err
	}
	return body, nil
}

func (l *Loader) fetch(ctx context.Context, u *url.URL) (string, error) {
	busted := *u
	q := busted.Query()
	q.Set("t", strconv.FormatInt(l.clock().UnixMilli(), 10))
	busted.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, busted.String(), nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := l.client().Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return "", retryable(errors.Wrap(errors.ErrCodeNetwork, err, "load %s", u.Path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.New(errors.ErrCodeFileNotFound, "Failed to load %s (%d)", u.Path, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", retryable(errors.New(errors.ErrCodeNetwork, "Failed to load %s (%d)", u.Path, resp.StatusCode))
	case resp.StatusCode >= 300:
		return "", errors.New(errors.ErrCodeNetwork, "Failed to load %s (%d)", u.Path, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxProgramBytes+1))
	if err != nil {
		return "", retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", u.Path))
	}
	if len(data) > maxProgramBytes {
		return "", errors.New(errors.ErrCodeInvalidProgram, "program at %s exceeds %d bytes", u.Path, maxProgramBytes)
	}
	return string(data), nil
}

// Describe returns a short display name for location.
func Describe(location string) string {
	if !errors.IsURL(location) {
		return location
	}
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return fmt.Sprintf("%s%s", u.Host, u.Path)
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

func (l *Loader) attempts() int {
	if l.Attempts > 0 {
		return l.Attempts
	}
	return DefaultAttempts
}

func (l *Loader) retryDelay() time.Duration {
	if l.RetryDelay > 0 {
		return l.RetryDelay
	}
	return DefaultRetryDelay
}

func (l *Loader) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.New(io.Discard)
}
