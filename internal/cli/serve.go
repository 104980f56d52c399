package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/imageforge/imageforge/pkg/buildinfo"
	"github.com/imageforge/imageforge/pkg/cache"
	ferrors "github.com/imageforge/imageforge/pkg/errors"
	"github.com/imageforge/imageforge/pkg/inspect"
	"github.com/imageforge/imageforge/pkg/pipeline"
	"github.com/imageforge/imageforge/pkg/script"
)

const (
	defaultRenderTimeout = 10 * time.Second
	shutdownTimeout      = 5 * time.Second

	// requestOverhead is the JSON envelope allowed on top of the program.
	requestOverhead = 64 << 10

	cacheScope = "imageforge:"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	listen  string
	timeout time.Duration
	cache   string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve exposes the renderer over HTTP:

  POST /api/render   {"program": "...", "formats": ["svg","png"], "scale": 2}
  GET  /api/default  the starter program
  GET  /healthz      build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				opts.listen = c.Config.Listen
			}
			if !cmd.Flags().Changed("cache") {
				opts.cache = c.Config.Cache
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.listen, "listen", "l", defaultListen, "address to listen on")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultRenderTimeout, "per-request render timeout")
	cmd.Flags().StringVar(&opts.cache, "cache", cacheFile, "render cache: file, redis or none")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := c.newCache(ctx, opts.cache)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.cache == cacheRedis {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cacheScope)
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	runner.Evaluator = &script.Evaluator{MaxProgramBytes: c.Config.MaxProgramBytes}
	defer runner.Close()

	srv := &server{
		runner:  runner,
		logger:  logger,
		timeout: opts.timeout,
		maxBody: int64(c.Config.MaxProgramBytes) + requestOverhead,
	}
	httpServer := &http.Server{
		Addr:              opts.listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(opts.listen)))
		printDetail("cache: %s", opts.cache)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// server handles the render API.
type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	maxBody int64
}

// renderRequest is the body of POST /api/render.
type renderRequest struct {
	Program string   `json:"program"`
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

// renderResponse is the body of a successful render. PNG data is base64
// encoded by encoding/json.
type renderResponse struct {
	ID         string       `json:"id"`
	Hash       string       `json:"hash"`
	SVG        string       `json:"svg,omitempty"`
	PNG        []byte       `json:"png,omitempty"`
	Size       inspect.Size `json:"size"`
	Cached     bool         `json:"cached"`
	Bytes      int          `json:"bytes"`
	DurationMS int64        `json:"duration_ms"`
}

type errorBody struct {
	ID    string    `json:"id,omitempty"`
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    ferrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/default", s.handleDefault)
		r.Post("/render", s.handleRender)
	})
	return r
}

type requestIDKey struct{}

// requestID tags each request with a UUID, echoes it in X-Request-ID and
// logs the request when it completes.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *server) handleDefault(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, script.DefaultProgram)
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := requestIDFrom(r.Context())

	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, id, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.runner.Execute(ctx, pipeline.Options{
		Program: req.Program,
		Formats: req.Formats,
		Scale:   req.Scale,
		Refresh: req.Refresh,
		Logger:  s.logger.With("id", id),
	})
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		ID:         id,
		Hash:       res.ProgramHash,
		SVG:        res.SVG(),
		PNG:        res.Artifacts[pipeline.FormatPNG],
		Size:       res.Size,
		Cached:     res.CacheInfo.Hit,
		Bytes:      res.Stats.Bytes,
		DurationMS: time.Since(start).Milliseconds(),
	})
}

func (s *server) writeError(w http.ResponseWriter, id string, err error) {
	code := ferrors.GetCode(err)
	if code == "" {
		code = ferrors.ErrCodeInternal
	}
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", id, "code", code, "err", err)
	} else {
		s.logger.Debug("render rejected", "id", id, "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{
		ID:    id,
		Error: errorInfo{Code: code, Message: ferrors.UserMessage(err)},
	})
}

// httpStatus maps an error code to the response status.
func httpStatus(code ferrors.Code) int {
	switch code {
	case ferrors.ErrCodeInvalidInput, ferrors.ErrCodeInvalidFormat, ferrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ferrors.ErrCodeInvalidProgram, ferrors.ErrCodeEvalFailed,
		ferrors.ErrCodeInvalidOutput, ferrors.ErrCodePrecondition:
		return http.StatusUnprocessableEntity
	case ferrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case ferrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ferrors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
