package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	ferrors "github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/pipeline"
	"github.com/imageforge/imageforge/pkg/script"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := &server{
		runner:  pipeline.NewRunner(nil, nil, logger),
		logger:  logger,
		timeout: 5 * time.Second,
		maxBody: 1 << 20,
	}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/render: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestServeRender(t *testing.T) {
	ts := newTestServer(t)

	req, _ := json.Marshal(renderRequest{Program: testProgram, Formats: []string{"svg", "png"}, Scale: 2})
	resp, data := postRender(t, ts, string(req))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	var got renderResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != resp.Header.Get("X-Request-ID") {
		t.Errorf("ID = %q, want header value %q", got.ID, resp.Header.Get("X-Request-ID"))
	}
	if !strings.HasPrefix(got.SVG, "<svg") {
		t.Errorf("SVG = %q", got.SVG)
	}
	if !bytes.HasPrefix(got.PNG, []byte("\x89PNG")) {
		t.Error("PNG is not a PNG image")
	}
	if got.Size.Width != "8" || got.Size.Height != "4" {
		t.Errorf("Size = %+v", got.Size)
	}
	if got.Hash == "" {
		t.Error("Hash is empty")
	}
}

func TestServeRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   ferrors.Code
	}{
		{"bad json", `{"program":`, http.StatusBadRequest, ferrors.ErrCodeInvalidInput},
		{"unknown field", `{"program":"x","colour":1}`, http.StatusBadRequest, ferrors.ErrCodeInvalidInput},
		{"missing program", `{}`, http.StatusUnprocessableEntity, ferrors.ErrCodeInvalidProgram},
		{"bad format", `{"program":"1","formats":["gif"]}`, http.StatusBadRequest, ferrors.ErrCodeInvalidFormat},
		{"compile error", `{"program":"render("}`, http.StatusUnprocessableEntity, ferrors.ErrCodeInvalidProgram},
		{"not svg", `{"program":"42"}`, http.StatusUnprocessableEntity, ferrors.ErrCodeInvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := postRender(t, ts, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, data)
			}
			var body errorBody
			if err := json.Unmarshal(data, &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.Message == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestServeDefault(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/default")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if string(data) != script.DefaultProgram {
		t.Error("GET /api/default did not return the default program")
	}
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("healthz = %v", body)
	}
}

func TestServeMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/render status = %d, want 405", resp.StatusCode)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ferrors.Code
		want int
	}{
		{ferrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{ferrors.ErrCodeEvalFailed, http.StatusUnprocessableEntity},
		{ferrors.ErrCodePrecondition, http.StatusUnprocessableEntity},
		{ferrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{ferrors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := httpStatus(tt.code); got != tt.want {
			t.Errorf("httpStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
