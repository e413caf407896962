// Package server exposes the explain and compare pipelines over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"mit.edu/dsg/qep"
	log "mit.edu/dsg/qep/logging"
)

const (
	routeSingle    = "/api/single"
	routeCompare   = "/api/compare"
	routeOperators = "/api/operators"
	routeStats     = "/api/stats"
	routeHealth    = "/healthz"

	requestIDHeader = "X-Request-Id"
	maxBodyBytes    = 4 << 20
)

type Config struct {
	Addr               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Server serves the HTTP API on top of a QEP.
type Server struct {
	qep     *qep.QEP
	cfg     Config
	stats   *routeStatsTable
	handler http.Handler
}

func New(q *qep.QEP, cfg Config) *Server {
	s := &Server{qep: q, cfg: cfg, stats: newRouteStats()}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+routeSingle, s.handleSingle)
	mux.HandleFunc("POST "+routeCompare, s.handleCompare)
	mux.HandleFunc("GET "+routeOperators, s.handleOperators)
	mux.HandleFunc("GET "+routeStats, s.handleStats)
	mux.HandleFunc("GET "+routeHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var h http.Handler = mux
	h = cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		Debug:          log.Debug().Enabled(),
	}).Handler(h)
	h = gzhttp.GzipHandler(h)
	s.handler = withRequestLogging(h)
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	// A zero timeout waits for in-flight requests without a deadline.
	var (
		shutdownCtx context.Context
		cancel      context.CancelFunc
	)
	if s.cfg.ShutdownTimeout > 0 {
		shutdownCtx, cancel = context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	} else {
		shutdownCtx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// withRequestLogging tags every request with an ID and a request-scoped logger.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		logger := log.With().Str("request_id", id).Str("method", r.Method).Str("path", r.URL.Path).Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		logger.Info().Int("status", rec.status).Dur("duration", time.Since(start)).Msg("handled request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
