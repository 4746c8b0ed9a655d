package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

const sentencesPrompt = `Generate 3 to 5 short example sentences for this word in its language or English.

Language: %s
Word: %s
Meaning: %s`

var sentencesSchema = domain.OutputSchema{
	Name:        "sample_sentences",
	Description: "Return the example sentences for the dictionary entry.",
	Properties: map[string]any{
		"sentences": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": domain.MinSampleSentences,
			"maxItems": domain.MaxSampleSentences,
		},
	},
	Required: []string{"sentences"},
}

// GenerateSampleSentences asks the AI collaborator for 3-5 sentences using the
// entry's word and overwrites the stored set. A reply without a valid list
// fails with domain.ErrUpstreamMalformed and leaves the entry unchanged.
func (s *Service) GenerateSampleSentences(ctx context.Context, entryID uuid.UUID) ([]string, error) {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	raw, err := s.ai.GenerateJSON(ctx, fmt.Sprintf(sentencesPrompt, e.Language, e.Word, e.Meaning), sentencesSchema)
	if err != nil {
		return nil, fmt.Errorf("enrichment.GenerateSampleSentences: %w", err)
	}

	sentences, err := parseSentences(raw)
	if err != nil {
		s.log.WarnContext(ctx, "sample sentences rejected",
			slog.String("entry_id", entryID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("enrichment.GenerateSampleSentences: %w", err)
	}

	if err := s.entries.SetSampleSentences(ctx, entryID, sentences); err != nil {
		return nil, fmt.Errorf("enrichment.GenerateSampleSentences store: %w", err)
	}

	return sentences, nil
}

func parseSentences(raw json.RawMessage) ([]string, error) {
	var payload struct {
		Sentences []string `json:"sentences"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
	}

	n := len(payload.Sentences)
	if n < domain.MinSampleSentences || n > domain.MaxSampleSentences {
		return nil, fmt.Errorf("%w: got %d sentences", domain.ErrUpstreamMalformed, n)
	}

	out := make([]string, n)
	for i, s := range payload.Sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%w: blank sentence at %d", domain.ErrUpstreamMalformed, i)
		}
		out[i] = s
	}
	return out, nil
}
