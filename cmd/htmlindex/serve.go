package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-htmlindex/internal/logfields"
	"github.com/alnah/go-htmlindex/internal/metrics"
	"github.com/alnah/go-htmlindex/internal/watch"
)

// Server defaults.
const (
	defaultAddr       = ":8080"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// runServe serves the manifest's document until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	name, err := resolveManifestName(positional, flags.common.config, envCfg)
	if err != nil {
		return err
	}
	logger, err := newLogger(env.Stderr, firstNonEmpty(flags.logFormat, envCfg.LogFormat), flags.common)
	if err != nil {
		return err
	}

	load := func(ctx context.Context) (*page, error) {
		cfg, err := loadManifest(name, envCfg, flags.document, flags.assets)
		if err != nil {
			return nil, err
		}
		return loadPage(ctx, cfg)
	}
	p, err := load(ctx)
	if err != nil {
		return err
	}

	var (
		reg      *prom.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if flags.metrics {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	s := newSite(p, load, recorder, logger)

	addr := firstNonEmpty(flags.addr, p.cfg.Serve.Addr, defaultAddr)
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}

	if flags.watch {
		w, err := watch.New(watch.DefaultDebounce, logger, func(ctx context.Context) {
			_ = s.reload(ctx)
		})
		if err != nil {
			_ = ln.Close()
			return err
		}
		s.watcher = w
		if err := w.SetFiles(p.sources...); err != nil {
			_ = ln.Close()
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("File watcher stopped", logfields.Error(err))
			}
		}()
		files := w.Files()
		for _, f := range files {
			logger.Debug("Watching file", logfields.File(f))
		}
		logger.Info("Watching for changes", slog.Int("files", len(files)))
	}

	return serve(ctx, ln, newServeMux(s, reg), logger)
}

// serve runs an HTTP server on ln until ctx is canceled, then shuts it
// down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("Serving document", logfields.Addr(ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// newServeMux routes the document at "/" and, when reg is non-nil,
// Prometheus metrics at "/metrics".
func newServeMux(s *site, reg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s)
	if reg != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(reg))
	}
	return mux
}

// site serves the current page. Reloads swap the page atomically; a
// failed reload keeps serving the previous page.
type site struct {
	mu   sync.RWMutex
	page *page

	load     func(context.Context) (*page, error)
	recorder metrics.Recorder
	logger   *slog.Logger
	watcher  *watch.Watcher // nil unless watching
}

func newSite(p *page, load func(context.Context) (*page, error), recorder metrics.Recorder, logger *slog.Logger) *site {
	return &site{page: p, load: load, recorder: recorder, logger: logger}
}

// current returns the page being served.
func (s *site) current() *page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// reload re-reads the manifest and body sources.
func (s *site) reload(ctx context.Context) error {
	start := time.Now()
	p, err := s.load(ctx)
	if err != nil {
		s.recorder.IncReload(metrics.ReloadFailed)
		s.logger.Error("Reload failed, serving previous document", logfields.Error(err))
		return err
	}

	s.mu.Lock()
	s.page = p
	s.mu.Unlock()

	if s.watcher != nil {
		// The body source may have moved to another file
		if err := s.watcher.SetFiles(p.sources...); err != nil {
			s.logger.Warn("Updating watched files failed", logfields.Error(err))
		}
	}

	s.recorder.IncReload(metrics.ReloadSuccess)
	s.logger.Info("Document reloaded",
		logfields.Config(p.cfg.Path),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// ServeHTTP assembles a fresh document for every request.
func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

	if err := s.current().builder().WriteResponse(rw); err != nil {
		s.logger.Warn("Writing response failed", logfields.Error(err))
	}

	elapsed := time.Since(start)
	s.recorder.ObserveRender(elapsed, rw.bytes)
	s.recorder.IncRequest(rw.status)
	s.logger.Debug("Request served",
		logfields.Method(r.Method),
		logfields.Path(r.URL.Path),
		logfields.Status(rw.status),
		logfields.Bytes(rw.bytes),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
}

// responseRecorder captures the status code and body size written.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// newLogger builds the serve logger. Level follows --verbose/--quiet.
func newLogger(w io.Writer, format string, common commonFlags) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: invalid log format %q (must be text or json)", ErrUsage, format)
	}
}
