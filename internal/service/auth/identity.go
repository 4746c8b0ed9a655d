package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

// ValidateToken verifies a bearer token without touching storage.
func (s *Service) ValidateToken(ctx context.Context, token string) (ctxutil.Identity, error) {
	id, err := s.jwt.ValidateToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "token validation failed", "error", err)
		return ctxutil.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// Me re-resolves the caller's user row. A token for a deleted user yields
// ErrUnauthorized.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return user, nil
}
