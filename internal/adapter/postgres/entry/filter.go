package entry

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/langarchive/internal/domain"
)

const maxLimit = 500

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// likeEscaper escapes LIKE metacharacters so a query string is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery renders the filtered, newest-first entry listing.
// q matches case-insensitively across word, meaning and example; category
// and language are exact matches. All present conditions are ANDed.
func buildListQuery(f domain.EntryFilter) (string, []any, error) {
	b := psql.Select(entryColumns).From("entries")

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"word": pattern},
			sq.ILike{"meaning": pattern},
			sq.ILike{"example": pattern},
		})
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		b = b.Where(sq.Eq{"category": c})
	}
	if l := strings.TrimSpace(f.Language); l != "" {
		b = b.Where(sq.Eq{"language": l})
	}

	b = b.OrderBy("created_at DESC", "id DESC")

	if f.Limit > 0 {
		limit := f.Limit
		if limit > maxLimit {
			limit = maxLimit
		}
		b = b.Limit(uint64(limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	return b.ToSql()
}
