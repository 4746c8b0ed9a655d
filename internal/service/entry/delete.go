package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// Delete hard-deletes an entry owned by the caller together with its
// ratings, favorites, recent views and comments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(userID) {
		return domain.ErrForbidden
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.entries.Delete(txCtx, id, userID)
	})
	if err != nil {
		return fmt.Errorf("entry.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "entry deleted", slog.String("entry_id", id.String()))

	return nil
}
