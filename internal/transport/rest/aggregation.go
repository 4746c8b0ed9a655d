package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

type aggregationService interface {
	Vote(ctx context.Context, entryID uuid.UUID) (int, error)
	Unvote(ctx context.Context, entryID uuid.UUID) (int, error)
	Rate(ctx context.Context, entryID uuid.UUID, value float64) (float64, error)
}

// AggregationHandler serves vote and rating endpoints.
type AggregationHandler struct {
	svc aggregationService
	log *slog.Logger
}

// NewAggregationHandler creates an AggregationHandler.
func NewAggregationHandler(svc aggregationService, logger *slog.Logger) *AggregationHandler {
	return &AggregationHandler{svc: svc, log: logger.With("handler", "aggregation")}
}

type votesResponse struct {
	Votes int `json:"votes"`
}

type rateRequest struct {
	Rating json.RawMessage `json:"rating"`
}

type rateResponse struct {
	Avg float64 `json:"avg"`
}

// Upvote handles POST /entries/{id}/upvote.
func (h *AggregationHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.svc.Vote)
}

// Unupvote handles POST /entries/{id}/unupvote.
func (h *AggregationHandler) Unupvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.svc.Unvote)
}

func (h *AggregationHandler) vote(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (int, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	votes, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, votesResponse{Votes: votes})
}

// Rate handles POST /entries/{id}/rate. The rating may be any JSON value;
// non-numeric input is clamped to the minimum.
func (h *AggregationHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req rateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	avg, err := h.svc.Rate(r.Context(), id, domain.ParseRating(req.Rating))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rateResponse{Avg: avg})
}
