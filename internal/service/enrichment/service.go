// Package enrichment drafts meanings, examples and sample sentences for
// entries with the help of an external generative-text service.
package enrichment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

type generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema domain.OutputSchema) (json.RawMessage, error)
}

type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	SetSampleSentences(ctx context.Context, id uuid.UUID, sentences []string) error
}

// Service orchestrates calls to the AI collaborator.
type Service struct {
	log     *slog.Logger
	ai      generator
	entries entryRepo
}

// NewService creates a new enrichment service.
func NewService(logger *slog.Logger, ai generator, entries entryRepo) *Service {
	return &Service{
		log:     logger.With("service", "enrichment"),
		ai:      ai,
		entries: entries,
	}
}
