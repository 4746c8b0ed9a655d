package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/langarchive/internal/domain"
)

const meaningPrompt = `You are helping build a multilingual dictionary of spoken local languages.

Language: %s
Word: %s

Return a short JSON object with:
- meaning: short definition in English
- example: one example sentence using that word (preferably in the same language, else English).`

// EnrichMeaning asks the AI collaborator for a definition and an example.
// A reply that is not a JSON object is used verbatim as the meaning and an
// empty or unusable reply yields an empty meaning; only failed calls are
// returned as errors.
func (s *Service) EnrichMeaning(ctx context.Context, language, word string) (*domain.Meaning, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = "Unknown"
	}

	text, err := s.ai.GenerateText(ctx, fmt.Sprintf(meaningPrompt, language, word))
	switch {
	case errors.Is(err, domain.ErrUpstreamMalformed):
		s.log.WarnContext(ctx, "unusable meaning reply", slog.String("error", err.Error()))
		return &domain.Meaning{}, nil
	case err != nil:
		return nil, fmt.Errorf("enrichment.EnrichMeaning: %w", err)
	}

	return parseMeaning(text), nil
}

// parseMeaning tries the whole reply as JSON, then the first {...} span
// inside it, and otherwise falls back to the trimmed reply as the meaning.
func parseMeaning(text string) *domain.Meaning {
	text = strings.TrimSpace(text)

	if m, ok := decodeMeaning(text); ok {
		return m
	}
	if span, ok := extractJSON(text); ok {
		if m, ok := decodeMeaning(span); ok {
			return m
		}
	}

	return &domain.Meaning{Meaning: text}
}

func decodeMeaning(s string) (*domain.Meaning, bool) {
	var m domain.Meaning
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	m.Meaning = strings.TrimSpace(m.Meaning)
	m.Example = strings.TrimSpace(m.Example)
	if m.Meaning == "" && m.Example == "" {
		return nil, false
	}
	return &m, true
}

// extractJSON returns the substring between the first '{' and the last '}'.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
