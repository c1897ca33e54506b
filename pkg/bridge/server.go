package bridge

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on the HTTP transport.
const RequestIDHeader = "X-Request-ID"

// maxRequestBody caps an incoming message.
const maxRequestBody = 64 << 10

// NewServer returns an HTTP handler exposing ch:
//
//	POST /v1/messages   one Request in, one Response out
//	GET  /healthz       liveness probe
func NewServer(ch Channel, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &server{ch: ch, logger: logger}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)
	r.Post("/v1/messages", s.handleMessage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}

type server struct {
	ch     Channel
	logger *log.Logger
}

func (s *server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid message: " + err.Error()})
		return
	}
	if req.ID == uuid.Nil {
		if id, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
			req.ID = id
		} else {
			req.ID = uuid.New()
		}
	}
	w.Header().Set(RequestIDHeader, req.ID.String())

	// Failed fetches are still delivered responses, so they use 200.
	writeJSON(w, http.StatusOK, Call(r.Context(), s.ch, req))
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
