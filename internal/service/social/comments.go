package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

const maxCommentLength = 2000

// AddComment posts a trimmed comment by the caller on the entry.
func (s *Service) AddComment(ctx context.Context, entryID uuid.UUID, text string) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "required")
	}
	if len(text) > maxCommentLength {
		return nil, domain.NewValidationError("text", "too long (max 2000)")
	}

	c, err := s.comments.Create(ctx, &domain.Comment{
		ID:        uuid.New(),
		EntryID:   entryID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("social.AddComment: %w", err)
	}
	return c, nil
}

// ListComments returns the entry's comments oldest first, each with its
// author's email as display identity.
func (s *Service) ListComments(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error) {
	comments, err := s.comments.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("social.ListComments: %w", err)
	}
	return comments, nil
}

// UpvoteComment adds one upvote and returns the new count. Upvotes are not
// tracked per user.
func (s *Service) UpvoteComment(ctx context.Context, commentID uuid.UUID) (int, error) {
	upvotes, err := s.comments.IncrementUpvotes(ctx, commentID)
	if err != nil {
		return 0, fmt.Errorf("social.UpvoteComment: %w", err)
	}
	return upvotes, nil
}
