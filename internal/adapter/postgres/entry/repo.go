// Package entry implements the Entry repository using PostgreSQL.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/domain"
)

const entryColumns = `id, owner_id, language, word, meaning, example, tags, category, audio_ref, ` +
	`votes, avg_rating, rating_count, share_token, region_name, region_lat, region_lng, ` +
	`sample_sentences, created_at, updated_at`

// Repo provides entry persistence and the entry-level aggregate counters.
type Repo struct {
	pool postgres.Querier
}

// New creates a new entry repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// Row is the scan target for entry rows. Other repositories that join
// entries reuse it.
type Row struct {
	ID              uuid.UUID  `db:"id"`
	OwnerID         *uuid.UUID `db:"owner_id"`
	Language        string     `db:"language"`
	Word            string     `db:"word"`
	Meaning         string     `db:"meaning"`
	Example         string     `db:"example"`
	Tags            []string   `db:"tags"`
	Category        string     `db:"category"`
	AudioRef        *string    `db:"audio_ref"`
	Votes           int        `db:"votes"`
	AvgRating       float64    `db:"avg_rating"`
	RatingCount     int        `db:"rating_count"`
	ShareToken      string     `db:"share_token"`
	RegionName      *string    `db:"region_name"`
	RegionLat       *float64   `db:"region_lat"`
	RegionLng       *float64   `db:"region_lng"`
	SampleSentences []string   `db:"sample_sentences"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Columns returns the entry column list, optionally qualified with a table alias.
func Columns(alias string) string {
	if alias == "" {
		return entryColumns
	}
	cols := strings.Split(entryColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// ToDomain converts a scanned row to a domain.Entry.
func (r Row) ToDomain() domain.Entry {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Entry{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Language:        r.Language,
		Word:            r.Word,
		Meaning:         r.Meaning,
		Example:         r.Example,
		Tags:            tags,
		Category:        r.Category,
		AudioRef:        r.AudioRef,
		Votes:           r.Votes,
		AvgRating:       r.AvgRating,
		RatingCount:     r.RatingCount,
		ShareToken:      r.ShareToken,
		Region:          domain.Region{Name: r.RegionName, Lat: r.RegionLat, Lng: r.RegionLng},
		SampleSentences: r.SampleSentences,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RowsToDomain converts a slice of scanned rows.
func RowsToDomain(rows []Row) []domain.Entry {
	out := make([]domain.Entry, len(rows))
	for i, r := range rows {
		out[i] = r.ToDomain()
	}
	return out
}

func scanRow(row pgx.Row) (Row, error) {
	var r Row
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Language, &r.Word, &r.Meaning, &r.Example, &r.Tags, &r.Category, &r.AudioRef,
		&r.Votes, &r.AvgRating, &r.RatingCount, &r.ShareToken, &r.RegionName, &r.RegionLat, &r.RegionLng,
		&r.SampleSentences, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns an entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row, err := scanRow(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}

	e := row.ToDomain()
	return &e, nil
}

// GetByShareToken returns the entry carrying the given share token.
func (r *Repo) GetByShareToken(ctx context.Context, token string) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row, err := scanRow(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE share_token = $1`, token))
	if err != nil {
		return nil, postgres.MapError(err, "entry", uuid.Nil)
	}

	e := row.ToDomain()
	return &e, nil
}

// List returns entries matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error) {
	sql, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []Row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return RowsToDomain(rows), nil
}

// Random returns one entry chosen uniformly at random, or domain.ErrNotFound
// when the store is empty.
func (r *Repo) Random(ctx context.Context) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row, err := scanRow(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY random() LIMIT 1`))
	if err != nil {
		return nil, postgres.MapError(err, "entry", uuid.Nil)
	}

	e := row.ToDomain()
	return &e, nil
}

type exportRow struct {
	Language  string    `db:"language"`
	Word      string    `db:"word"`
	Meaning   string    `db:"meaning"`
	Example   string    `db:"example"`
	Category  string    `db:"category"`
	Tags      []string  `db:"tags"`
	Votes     int       `db:"votes"`
	AvgRating float64   `db:"avg_rating"`
	CreatedAt time.Time `db:"created_at"`
}

// ExportRows returns the tabular projection of every entry, newest first.
func (r *Repo) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	var rows []exportRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows,
		`SELECT language, word, meaning, example, category, tags, votes, avg_rating, created_at
		 FROM entries
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}

	out := make([]domain.ExportRow, len(rows))
	for i, row := range rows {
		out[i] = domain.ExportRow(row)
	}
	return out, nil
}

// AudioRefs returns every stored audio reference.
func (r *Repo) AudioRefs(ctx context.Context) ([]string, error) {
	var refs []string
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &refs,
		`SELECT audio_ref FROM entries WHERE audio_ref IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("list audio refs: %w", err)
	}
	return refs, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new entry and returns the persisted row.
// A share-token collision yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row, err := scanRow(q.QueryRow(ctx,
		`INSERT INTO entries (id, owner_id, language, word, meaning, example, tags, category, audio_ref,
		                      share_token, region_name, region_lat, region_lng, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+entryColumns,
		e.ID, e.OwnerID, e.Language, e.Word, e.Meaning, e.Example, e.Tags, e.Category, e.AudioRef,
		e.ShareToken, e.Region.Name, e.Region.Lat, e.Region.Lng, e.CreatedAt, e.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}

	out := row.ToDomain()
	return &out, nil
}

// Update writes the owner-editable fields of e. The row must belong to
// ownerID; otherwise (or when it no longer exists) domain.ErrNotFound is returned.
func (r *Repo) Update(ctx context.Context, ownerID uuid.UUID, e *domain.Entry) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row, err := scanRow(q.QueryRow(ctx,
		`UPDATE entries
		 SET language = $3, word = $4, meaning = $5, example = $6, tags = $7, category = $8,
		     audio_ref = $9, region_name = $10, region_lat = $11, region_lng = $12, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+entryColumns,
		e.ID, ownerID, e.Language, e.Word, e.Meaning, e.Example, e.Tags, e.Category,
		e.AudioRef, e.Region.Name, e.Region.Lat, e.Region.Lng,
	))
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}

	out := row.ToDomain()
	return &out, nil
}

// Delete removes the entry owned by ownerID together with every rating,
// favorite, recent view and comment that references it. Callers run it
// inside a transaction so the cleanup is all-or-nothing.
func (r *Repo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for _, table := range []string{"ratings", "favorites", "recent_views", "comments"} {
		if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE entry_id = $1`, id); err != nil {
			return postgres.MapError(err, "entry", id)
		}
	}

	tag, err := q.Exec(ctx, `DELETE FROM entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetSampleSentences overwrites the stored sample sentences wholesale.
func (r *Repo) SetSampleSentences(ctx context.Context, id uuid.UUID, sentences []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE entries SET sample_sentences = $2, updated_at = now() WHERE id = $1`,
		id, sentences,
	)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// IncrementVotes atomically adds one vote and returns the new count.
func (r *Repo) IncrementVotes(ctx context.Context, id uuid.UUID) (int, error) {
	return r.updateVotes(ctx, id, `UPDATE entries SET votes = votes + 1 WHERE id = $1 RETURNING votes`)
}

// DecrementVotes atomically removes one vote, never going below zero.
func (r *Repo) DecrementVotes(ctx context.Context, id uuid.UUID) (int, error) {
	return r.updateVotes(ctx, id, `UPDATE entries SET votes = GREATEST(votes - 1, 0) WHERE id = $1 RETURNING votes`)
}

func (r *Repo) updateVotes(ctx context.Context, id uuid.UUID, sql string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var votes int
	if err := q.QueryRow(ctx, sql, id).Scan(&votes); err != nil {
		return 0, postgres.MapError(err, "entry", id)
	}
	return votes, nil
}

// ApplyRating folds one rating value into the running (sum, count) pair
// and rewrites the denormalized average in a single statement.
func (r *Repo) ApplyRating(ctx context.Context, id uuid.UUID, value float64) (float64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var avg float64
	err := q.QueryRow(ctx,
		`UPDATE entries
		 SET rating_sum   = rating_sum + $2,
		     rating_count = rating_count + 1,
		     avg_rating   = (rating_sum + $2) / (rating_count + 1)
		 WHERE id = $1
		 RETURNING avg_rating`,
		id, value,
	).Scan(&avg)
	if err != nil {
		return 0, postgres.MapError(err, "entry", id)
	}
	return avg, nil
}
