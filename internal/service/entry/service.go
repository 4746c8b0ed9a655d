package entry

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/langarchive/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Entry, error)
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
	Random(ctx context.Context) (*domain.Entry, error)
	ExportRows(ctx context.Context) ([]domain.ExportRow, error)
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	Update(ctx context.Context, ownerID uuid.UUID, e *domain.Entry) (*domain.Entry, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type audioStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

type viewRecorder interface {
	RecordView(ctx context.Context, userID, entryID uuid.UUID)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements entry lifecycle operations.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	audio   audioStore
	views   viewRecorder
	tx      txManager
}

// NewService creates a new entry service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	audio audioStore,
	views viewRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "entry"),
		entries: entries,
		audio:   audio,
		views:   views,
		tx:      tx,
	}
}
