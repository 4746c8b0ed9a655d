// Package favorite implements the Favorite repository using PostgreSQL.
package favorite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/adapter/postgres/entry"
	"github.com/heartmarshall/langarchive/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo stores the (user, entry) favorite presence set.
type Repo struct {
	pool postgres.Querier
}

// New creates a new favorite repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Add inserts the favorite. An existing (user, entry) pair is left as is.
func (r *Repo) Add(ctx context.Context, userID, entryID uuid.UUID) error {
	sql, args, err := psql.Insert("favorites").
		Columns("id", "user_id", "entry_id", "created_at").
		Values(uuid.New(), userID, entryID, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id, entry_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build favorite insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "favorite", entryID)
	}
	return nil
}

// Remove deletes the favorite if present.
func (r *Repo) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND entry_id = $2`, userID, entryID)
	if err != nil {
		return postgres.MapError(err, "favorite", entryID)
	}
	return nil
}

// ListEntries returns the user's favorited entries, most recently favorited first.
func (r *Repo) ListEntries(ctx context.Context, userID uuid.UUID) ([]domain.Entry, error) {
	var rows []entry.Row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT `+entry.Columns("e")+`
		 FROM favorites f
		 JOIN entries e ON e.id = f.entry_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC, f.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return entry.RowsToDomain(rows), nil
}
