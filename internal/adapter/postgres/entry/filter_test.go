package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langarchive/internal/domain"
)

func TestBuildListQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    domain.EntryFilter
		wantWhere string
		wantTail  string
		wantArgs  []any
	}{
		{
			name:     "no filter",
			filter:   domain.EntryFilter{},
			wantTail: "ORDER BY created_at DESC, id DESC",
		},
		{
			name:      "query only",
			filter:    domain.EntryFilter{Query: "hello"},
			wantWhere: "WHERE (word ILIKE $1 OR meaning ILIKE $2 OR example ILIKE $3)",
			wantArgs:  []any{"%hello%", "%hello%", "%hello%"},
		},
		{
			name:      "all filters",
			filter:    domain.EntryFilter{Query: "na", Category: "greeting", Language: "Hindi"},
			wantWhere: "WHERE (word ILIKE $1 OR meaning ILIKE $2 OR example ILIKE $3) AND category = $4 AND language = $5",
			wantArgs:  []any{"%na%", "%na%", "%na%", "greeting", "Hindi"},
		},
		{
			name:     "metacharacters escaped",
			filter:   domain.EntryFilter{Query: `50%_\`},
			wantArgs: []any{`%50\%\_\\%`, `%50\%\_\\%`, `%50\%\_\\%`},
		},
		{
			name:     "limit and offset",
			filter:   domain.EntryFilter{Limit: 10, Offset: 20},
			wantTail: "LIMIT 10 OFFSET 20",
		},
		{
			name:     "limit clamped",
			filter:   domain.EntryFilter{Limit: 100000},
			wantTail: "LIMIT 500",
		},
		{
			name:      "blank values ignored",
			filter:    domain.EntryFilter{Query: "  ", Category: " "},
			wantTail:  "FROM entries ORDER BY created_at DESC, id DESC",
			wantWhere: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args, err := buildListQuery(tt.filter)
			require.NoError(t, err)

			if tt.wantWhere != "" {
				assert.Contains(t, sql, tt.wantWhere)
			}
			if tt.wantTail != "" {
				assert.Contains(t, sql, tt.wantTail)
			}
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, args)
			} else {
				assert.Empty(t, args)
			}
		})
	}
}
