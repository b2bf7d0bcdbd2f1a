package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
)

// ─────────────────────────────────────────────
// DTOs
// ─────────────────────────────────────────────

type uploadResponse struct {
	SessionID int64                   `json:"sessionId"`
	Metrics   metrics.AnalysisMetrics `json:"metrics"`
}

type sessionResponse struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
}

type getSessionResponse struct {
	Session sessionResponse         `json:"session"`
	Metrics metrics.AnalysisMetrics `json:"metrics"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	log := loggerFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.metrics.UploadsTotal.WithLabelValues("too_large").Inc()
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		s.metrics.UploadsTotal.WithLabelValues("no_file").Inc()
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("read upload")
		writeError(w, http.StatusInternalServerError, "Failed to analyze chat file")
		return
	}

	start := time.Now()
	msgs := s.parser.Parse(string(content))
	m := metrics.Aggregate(msgs)
	s.metrics.AnalysisSeconds.Observe(time.Since(start).Seconds())
	s.metrics.MessagesParsed.Add(float64(len(msgs)))

	sess, err := s.st.CreateSession(r.Context(), header.Filename, m, msgs)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("file", header.Filename).Msg("store session")
		writeError(w, http.StatusInternalServerError, "Failed to analyze chat file")
		return
	}

	s.metrics.UploadsTotal.WithLabelValues("ok").Inc()
	log.Info().
		Int64("session", sess.ID).
		Str("file", header.Filename).
		Int("messages", m.TotalMessages).
		Msg("chat analyzed")

	writeJSON(w, http.StatusOK, uploadResponse{SessionID: sess.ID, Metrics: m})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	sess, err := s.st.GetSession(r.Context(), id)
	if err != nil {
		loggerFrom(r.Context()).Error().Err(err).Int64("session", id).Msg("get session")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve session")
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, getSessionResponse{
		Session: sessionResponse{
			ID:        sess.ID,
			Filename:  sess.Filename,
			CreatedAt: sess.CreatedAt,
		},
		Metrics: sess.Metrics,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	limit := s.opts.RecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sessions, err := s.st.RecentSessions(r.Context(), limit)
	if err != nil {
		loggerFrom(r.Context()).Error().Err(err).Msg("list sessions")
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}
	if _, err := s.st.SessionCount(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
