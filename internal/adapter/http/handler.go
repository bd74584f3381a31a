package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adselect/internal/core/domain"
	"adselect/internal/core/dto"
	"adselect/internal/core/port"
	"adselect/internal/metrics"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: selection and event usecases are executed by the registered
// handlers, a logger provides structured logging. Routes live on a
// chi.Router for convenient method handling.
type Handler struct {
	selector port.SelectUseCase
	events   port.EventUseCase
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(selector port.SelectUseCase, events port.EventUseCase, logger *slog.Logger) *Handler {
	h := &Handler{selector: selector, events: events, logger: logger}
	r := chi.NewRouter()
	r.Use(metrics.Middleware())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/find", h.handleFind)
		r.Post("/events", h.handleRegisterImpression)
		r.Put("/events/{id}/click", h.handleClick)
		r.Put("/events/{id}/payments", h.handlePayment)
		r.Get("/events/{id}", h.handleGetEvent)
		r.Get("/stats/overview", h.handleStatsOverview)
	})
	r.Handle("/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeJSON encodes v as the response body with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the two domain error kinds plus repository misses onto
// HTTP statuses: validation and invariant failures are unprocessable input,
// conflicting re-attributions are conflicts, unknown events are not found.
// Anything else is an internal error and is logged.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *dto.ValidationError
		invariantErr  *domain.InvariantError
	)
	switch {
	case errors.As(err, &validationErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorBody{Message: validationErr.Error()})
	case errors.As(err, &invariantErr):
		status := http.StatusUnprocessableEntity
		if invariantErr.Conflict() {
			status = http.StatusConflict
		}
		h.writeJSON(w, status, errorBody{Message: invariantErr.Error()})
	case errors.Is(err, port.ErrEventNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody{Message: "event not found"})
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal error"})
	}
}

type errorBody struct {
	Message string `json:"message"`
}
