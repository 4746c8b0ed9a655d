package social

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// RecordView appends a view event. Failures are logged and never returned.
func (s *Service) RecordView(ctx context.Context, userID, entryID uuid.UUID) {
	err := s.views.Record(ctx, &domain.RecentView{
		ID:       uuid.New(),
		UserID:   userID,
		EntryID:  entryID,
		ViewedAt: time.Now(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "record view failed",
			slog.String("user_id", userID.String()),
			slog.String("entry_id", entryID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// ListRecent returns the caller's most recently viewed entries, newest first.
// Repeated views of one entry are not collapsed.
func (s *Service) ListRecent(ctx context.Context) ([]domain.Entry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.views.ListEntries(ctx, userID, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("social.ListRecent: %w", err)
	}
	if len(entries) > s.recentLimit {
		entries = entries[:s.recentLimit]
	}
	return entries, nil
}
