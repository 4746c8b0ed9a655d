package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type jwtManager interface {
	GenerateToken(id ctxutil.Identity) (string, error)
	ValidateToken(token string) (ctxutil.Identity, error)
}

// Service implements registration, login and bearer token verification.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new auth service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		jwt:   jwt,
		cfg:   cfg,
	}
}

func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(ctxutil.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
