package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// Update applies the set fields of input to an entry owned by the caller.
// Entries without an owner are never editable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Entry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	updated := *existing
	applyUpdate(&updated, input)

	if input.Audio != nil {
		ref, err := s.saveAudio(ctx, input.Audio)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			updated.AudioRef = ref
		}
	}

	// A concurrent delete between the ownership check and this write
	// surfaces as ErrNotFound.
	result, err := s.entries.Update(ctx, userID, &updated)
	if err != nil {
		return nil, fmt.Errorf("entry.Update: %w", err)
	}

	s.log.InfoContext(ctx, "entry updated", slog.String("entry_id", id.String()))

	return result, nil
}

func applyUpdate(e *domain.Entry, input UpdateInput) {
	if input.Language != nil {
		e.Language = *input.Language
	}
	if input.Word != nil {
		e.Word = *input.Word
	}
	if input.Meaning != nil {
		e.Meaning = *input.Meaning
	}
	if input.Example != nil {
		e.Example = *input.Example
	}
	if input.Tags != nil {
		e.Tags = *input.Tags
	}
	if input.Category != nil {
		e.Category = *input.Category
		if e.Category == "" {
			e.Category = domain.DefaultCategory
		}
	}
	if input.Region != nil {
		e.Region = *input.Region
	}
}
