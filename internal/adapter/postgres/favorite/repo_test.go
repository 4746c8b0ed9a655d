package favorite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langarchive/internal/adapter/postgres/favorite"
	"github.com/heartmarshall/langarchive/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Add(t *testing.T) {
	t.Parallel()

	userID, entryID := uuid.New(), uuid.New()

	t.Run("insert ignores duplicates", func(t *testing.T) {
		t.Parallel()
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO favorites .+ ON CONFLICT \(user_id, entry_id\) DO NOTHING`).
			WithArgs(pgxmock.AnyArg(), userID, entryID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		require.NoError(t, favorite.New(mock).Add(context.Background(), userID, entryID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown entry", func(t *testing.T) {
		t.Parallel()
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO favorites`).
			WithArgs(pgxmock.AnyArg(), userID, entryID, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := favorite.New(mock).Add(context.Background(), userID, entryID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepo_Remove(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	userID, entryID := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM favorites WHERE user_id = \$1 AND entry_id = \$2`).
		WithArgs(userID, entryID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, favorite.New(mock).Remove(context.Background(), userID, entryID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListEntries(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	userID := uuid.New()
	now := time.Now().UTC()

	cols := []string{
		"id", "owner_id", "language", "word", "meaning", "example", "tags", "category", "audio_ref",
		"votes", "avg_rating", "rating_count", "share_token", "region_name", "region_lat", "region_lng",
		"sample_sentences", "created_at", "updated_at",
	}
	var (
		noOwner *uuid.UUID
		noStr   *string
		noFloat *float64
	)
	rows := pgxmock.NewRows(cols).
		AddRow(uuid.New(), noOwner, "Twi", "akwaaba", "welcome", "", []string{}, "general", noStr,
			1, 5.0, 1, uuid.NewString(), noStr, noFloat, noFloat, []string(nil), now, now)

	mock.ExpectQuery(`FROM favorites f\s+JOIN entries e ON e.id = f.entry_id\s+WHERE f.user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(rows)

	got, err := favorite.New(mock).ListEntries(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "akwaaba", got[0].Word)
	require.NoError(t, mock.ExpectationsWereMet())
}
