package social

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type favoriteRepo interface {
	Add(ctx context.Context, userID, entryID uuid.UUID) error
	Remove(ctx context.Context, userID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID) ([]domain.Entry, error)
}

type recentViewRepo interface {
	Record(ctx context.Context, v *domain.RecentView) error
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Entry, error)
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error)
	IncrementUpvotes(ctx context.Context, id uuid.UUID) (int, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements favorites, recent views and comment threads.
type Service struct {
	log         *slog.Logger
	favorites   favoriteRepo
	views       recentViewRepo
	comments    commentRepo
	recentLimit int
}

// NewService creates a new social service. recentLimit caps ListRecent and
// is itself capped at domain.MaxRecentViews.
func NewService(
	logger *slog.Logger,
	favorites favoriteRepo,
	views recentViewRepo,
	comments commentRepo,
	recentLimit int,
) *Service {
	if recentLimit <= 0 || recentLimit > domain.MaxRecentViews {
		recentLimit = domain.MaxRecentViews
	}
	return &Service{
		log:         logger.With("service", "social"),
		favorites:   favorites,
		views:       views,
		comments:    comments,
		recentLimit: recentLimit,
	}
}
