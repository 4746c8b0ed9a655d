package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

type entryRepo interface {
	IncrementVotes(ctx context.Context, id uuid.UUID) (int, error)
	DecrementVotes(ctx context.Context, id uuid.UUID) (int, error)
	ApplyRating(ctx context.Context, id uuid.UUID, value float64) (float64, error)
}

type ratingRepo interface {
	Create(ctx context.Context, r *domain.Rating) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service maintains vote counters and rating averages on entries.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	ratings ratingRepo
	tx      txManager
}

// NewService creates a new aggregation service.
func NewService(logger *slog.Logger, entries entryRepo, ratings ratingRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "aggregation"),
		entries: entries,
		ratings: ratings,
		tx:      tx,
	}
}

// Vote adds one vote to the entry and returns the new count. Votes are not
// tracked per user.
func (s *Service) Vote(ctx context.Context, entryID uuid.UUID) (int, error) {
	votes, err := s.entries.IncrementVotes(ctx, entryID)
	if err != nil {
		return 0, fmt.Errorf("aggregation.Vote: %w", err)
	}
	return votes, nil
}

// Unvote removes one vote, never going below zero.
func (s *Service) Unvote(ctx context.Context, entryID uuid.UUID) (int, error) {
	votes, err := s.entries.DecrementVotes(ctx, entryID)
	if err != nil {
		return 0, fmt.Errorf("aggregation.Unvote: %w", err)
	}
	return votes, nil
}

// Rate records a rating from the caller and returns the entry's new average.
// The value is clamped into [domain.MinRating, domain.MaxRating]. The rating
// row and the running aggregate are written in one transaction.
func (s *Service) Rate(ctx context.Context, entryID uuid.UUID, value float64) (float64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		EntryID:   entryID,
		UserID:    userID,
		Value:     domain.ClampRating(value),
		CreatedAt: time.Now(),
	}

	var avg float64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ratings.Create(txCtx, rating); err != nil {
			return fmt.Errorf("create rating: %w", err)
		}

		var err error
		avg, err = s.entries.ApplyRating(txCtx, entryID, rating.Value)
		if err != nil {
			return fmt.Errorf("apply rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("aggregation.Rate: %w", err)
	}

	s.log.DebugContext(ctx, "entry rated",
		slog.String("entry_id", entryID.String()),
		slog.Float64("value", rating.Value),
		slog.Float64("avg_rating", avg),
	)

	return avg, nil
}
