// Package server exposes analysis over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

type Options struct {
	MaxUploadBytes int64
	RecentLimit    int
}

type Server struct {
	st      *store.Store
	parser  *parse.Parser
	opts    Options
	reg     *prometheus.Registry
	metrics *Metrics
	handler http.Handler
}

func New(st *store.Store, p *parse.Parser, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 50 << 20
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newStoreCollector(st),
	)

	s := &Server{
		st:      st,
		parser:  p,
		opts:    opts,
		reg:     reg,
		metrics: NewMetrics(reg),
	}

	// Path-only patterns; handlers answer a wrong method with a JSON 405.
	mux := http.NewServeMux()

	// /api/chat/upload → analyze and store an export (POST)
	mux.HandleFunc("/api/chat/upload", s.handleUpload)

	// /api/sessions      → recent sessions (GET)
	// /api/sessions/{id} → one session with metrics (GET)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/sessions/{id}", s.handleSession)

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	s.handler = chainMiddlewares(mux, withRequestID, s.withLogging, withRecover)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Registry is the registry behind /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.reg
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
