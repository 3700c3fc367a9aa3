package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"telegram-gate-bot/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the health probe, the metrics endpoint and the
// subscription verdict used by the download site.
type Server struct {
	subs  usecase.SubscriptionUseCase
	stats usecase.StatsUseCase
	log   *zerolog.Logger
	http  *http.Server
}

func NewServer(addr string, subs usecase.SubscriptionUseCase, stats usecase.StatsUseCase, logger *zerolog.Logger) *Server {
	s := &Server{subs: subs, stats: stats, log: logger}

	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(logger), Recover(logger), middleware.Timeout(30*time.Second))
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/subscription/{telegramID}", s.handleSubscription)
		r.Get("/stats", s.handleStats)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleSubscription returns the gate verdict for one user. The
// download site calls this after its getid deep link round trip.
func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "telegramID must be numeric"})
		return
	}
	subscribed := s.subs.IsSubscribed(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]any{
		"telegram_id": id,
		"subscribed":  subscribed,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Totals(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
