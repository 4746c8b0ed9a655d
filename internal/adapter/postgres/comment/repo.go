// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/domain"
)

// Repo stores entry comments.
type Repo struct {
	pool postgres.Querier
}

// New creates a new comment repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Create inserts the comment and returns it joined with the author's email.
// An unknown entry yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.Comment
	err := q.QueryRow(ctx,
		`WITH ins AS (
		     INSERT INTO comments (id, entry_id, user_id, text, created_at)
		     VALUES ($1, $2, $3, $4, $5)
		     RETURNING id, entry_id, user_id, text, upvotes, created_at
		 )
		 SELECT ins.id, ins.entry_id, ins.user_id, ins.text, ins.upvotes, ins.created_at, u.email
		 FROM ins JOIN users u ON u.id = ins.user_id`,
		c.ID, c.EntryID, c.UserID, c.Text, c.CreatedAt,
	).Scan(&out.ID, &out.EntryID, &out.UserID, &out.Text, &out.Upvotes, &out.CreatedAt, &out.AuthorEmail)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.EntryID)
	}
	return &out, nil
}

// ListByEntry returns the entry's comments oldest first.
func (r *Repo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error) {
	var out []domain.Comment
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out,
		`SELECT c.id, c.entry_id, c.user_id, c.text, c.upvotes, c.created_at, u.email AS author_email
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.entry_id = $1
		 ORDER BY c.created_at ASC, c.id ASC`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}

// IncrementUpvotes atomically adds one upvote and returns the new count.
func (r *Repo) IncrementUpvotes(ctx context.Context, id uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var upvotes int
	err := q.QueryRow(ctx, `UPDATE comments SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes`, id).
		Scan(&upvotes)
	if err != nil {
		return 0, postgres.MapError(err, "comment", id)
	}
	return upvotes, nil
}
