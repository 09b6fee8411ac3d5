// Package http exposes the bot engine as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atendebot/atende/internal/logging"
	"github.com/atendebot/atende/internal/metrics"
	"github.com/atendebot/atende/pkg/dialog"
)

// Bot defines the interface for the dialog engine core.
type Bot interface {
	ProcessTurn(ctx context.Context, conversationID string, input dialog.Input) ([]dialog.Activity, error)
}

// MessageRequest is one inbound user turn.
type MessageRequest struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId,omitempty"`
	Text           string `json:"text,omitempty"`
	ChoiceIndex    *int   `json:"choiceIndex,omitempty"`
}

// MessageResponse carries the ordered activities produced by the turn.
type MessageResponse struct {
	ConversationID string            `json:"conversationId"`
	Activities     []dialog.Activity `json:"activities"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server handles the bot API routes.
type Server struct {
	bot     Bot
	logger  *slog.Logger
	metrics *metrics.Metrics
	version string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics enables turn instrumentation and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewHandler creates the HTTP handler for the bot engine. Extra routers
// (e.g. the order API) can be mounted under the given prefixes.
func NewHandler(bot Bot, mounts map[string]http.Handler, opts ...Option) http.Handler {
	s := &Server{bot: bot, logger: logging.NewNop(), version: "dev"}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/info", s.info)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Post("/api/messages", s.messages)

	for prefix, h := range mounts {
		r.Mount(prefix, h)
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "atende",
		"version": s.version,
	})
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}
	if body.ConversationID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "conversationId é obrigatório"})
		return
	}

	input := dialog.Input{
		UserID:      body.UserID,
		Text:        body.Text,
		ChoiceIndex: body.ChoiceIndex,
	}

	start := time.Now()
	activities, err := s.bot.ProcessTurn(r.Context(), body.ConversationID, input)
	if s.metrics != nil {
		s.metrics.ObserveTurn(start, err)
	}
	if err != nil {
		s.logger.Error("turn failed", "conversation_id", body.ConversationID, "err", err)
		switch {
		case errors.Is(err, dialog.ErrVersionConflict):
			// A concurrent delivery for the same conversation won; the client
			// should refetch and resend.
			writeJSON(w, http.StatusConflict, errorResponse{Error: "entrega duplicada ou concorrente"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "erro interno"})
		}
		return
	}

	if activities == nil {
		activities = []dialog.Activity{}
	}
	writeJSON(w, http.StatusOK, MessageResponse{
		ConversationID: body.ConversationID,
		Activities:     activities,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
