// Package recentview implements the append-only RecentView repository using PostgreSQL.
package recentview

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/adapter/postgres/entry"
	"github.com/heartmarshall/langarchive/internal/domain"
)

// Repo stores view events.
type Repo struct {
	pool postgres.Querier
}

// New creates a new recent-view repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Record appends one view event.
func (r *Repo) Record(ctx context.Context, v *domain.RecentView) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO recent_views (id, user_id, entry_id, viewed_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.UserID, v.EntryID, v.ViewedAt,
	)
	if err != nil {
		return postgres.MapError(err, "recent_view", v.EntryID)
	}
	return nil
}

// ListEntries returns the entries behind the user's latest limit views,
// most recent first. Repeated views of one entry are not collapsed.
func (r *Repo) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Entry, error) {
	var rows []entry.Row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT `+entry.Columns("e")+`
		 FROM recent_views v
		 JOIN entries e ON e.id = v.entry_id
		 WHERE v.user_id = $1
		 ORDER BY v.viewed_at DESC, v.id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent views: %w", err)
	}
	return entry.RowsToDomain(rows), nil
}
