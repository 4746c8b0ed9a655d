package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// Get returns one entry. When the caller is authenticated a view is recorded
// on a best-effort basis.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		s.views.RecordView(ctx, userID, e.ID)
	}

	return e, nil
}

// List returns entries matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	if filter.Limit < 0 {
		return nil, domain.NewValidationError("limit", "must be non-negative")
	}
	if filter.Offset < 0 {
		return nil, domain.NewValidationError("offset", "must be non-negative")
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("entry.List: %w", err)
	}
	return entries, nil
}

// ResolvePublic returns the public projection of the entry behind a share
// token. No view is recorded.
func (s *Service) ResolvePublic(ctx context.Context, token string) (*domain.PublicEntry, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, domain.ErrNotFound
	}

	e, err := s.entries.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	pub := e.Public()
	return &pub, nil
}

// WordOfDay returns a random entry, or nil when the archive is empty.
func (s *Service) WordOfDay(ctx context.Context) (*domain.Entry, error) {
	e, err := s.entries.Random(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("entry.WordOfDay: %w", err)
	}
	return e, nil
}

// ExportRows returns the tabular projection of every entry for CSV export.
func (s *Service) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	rows, err := s.entries.ExportRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("entry.ExportRows: %w", err)
	}
	return rows, nil
}
