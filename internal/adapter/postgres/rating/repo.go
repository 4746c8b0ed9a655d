// Package rating implements the append-only Rating repository using PostgreSQL.
package rating

import (
	"context"

	postgres "github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/domain"
)

// Repo stores immutable rating events.
type Repo struct {
	pool postgres.Querier
}

// New creates a new rating repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Create appends a rating row. An unknown entry yields domain.ErrNotFound,
// an out-of-range value domain.ErrValidation.
func (r *Repo) Create(ctx context.Context, rt *domain.Rating) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO ratings (id, entry_id, user_id, value, created_at) VALUES ($1, $2, $3, $4, $5)`,
		rt.ID, rt.EntryID, rt.UserID, rt.Value, rt.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "rating", rt.EntryID)
	}
	return nil
}
