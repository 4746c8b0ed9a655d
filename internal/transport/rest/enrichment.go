package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

type enrichmentService interface {
	EnrichMeaning(ctx context.Context, language, word string) (*domain.Meaning, error)
	GenerateSampleSentences(ctx context.Context, entryID uuid.UUID) ([]string, error)
}

// EnrichmentHandler serves AI-assisted drafting endpoints.
type EnrichmentHandler struct {
	svc enrichmentService
	log *slog.Logger
}

// NewEnrichmentHandler creates an EnrichmentHandler.
func NewEnrichmentHandler(svc enrichmentService, logger *slog.Logger) *EnrichmentHandler {
	return &EnrichmentHandler{svc: svc, log: logger.With("handler", "enrichment")}
}

type enrichRequest struct {
	Language string `json:"language"`
	Word     string `json:"word"`
}

type enrichResponse struct {
	OK      bool   `json:"ok"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

type sentencesResponse struct {
	OK        bool     `json:"ok"`
	Sentences []string `json:"sentences"`
}

// Enrich handles POST /ai/enrich.
func (h *EnrichmentHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.svc.EnrichMeaning(r.Context(), req.Language, req.Word)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, enrichResponse{OK: true, Meaning: m.Meaning, Example: m.Example})
}

// GenerateSentences handles POST /entries/{id}/generate-sentences.
func (h *EnrichmentHandler) GenerateSentences(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	sentences, err := h.svc.GenerateSampleSentences(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sentencesResponse{OK: true, Sentences: sentences})
}
