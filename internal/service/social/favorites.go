package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// Favorite marks the entry as a favorite of the caller. Favoriting twice
// succeeds and leaves one row.
func (s *Service) Favorite(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.favorites.Add(ctx, userID, entryID); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("social.Favorite: %w", err)
	}
	return nil
}

// Unfavorite removes the favorite if present. Absence is also success.
func (s *Service) Unfavorite(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.favorites.Remove(ctx, userID, entryID); err != nil {
		return fmt.Errorf("social.Unfavorite: %w", err)
	}
	return nil
}

// ListFavorites returns the caller's favorites, most recently favorited first.
func (s *Service) ListFavorites(ctx context.Context) ([]domain.Entry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.favorites.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("social.ListFavorites: %w", err)
	}
	return entries, nil
}
