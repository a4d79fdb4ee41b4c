package postgres

import (
	"strings"
	"testing"

	domain "library/backend/internal/domain/book"

	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildBooksQuery_NoFilter(t *testing.T) {
	t.Parallel()

	query, args := buildBooksQuery(domain.Filter{})

	require.Equal(t, "SELECT book_id, title, author, is_available FROM books", query)
	require.Empty(t, args)
}

func TestBuildBooksQuery_Combinations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    domain.Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "id only",
			filter:    domain.Filter{ID: int64Ptr(7)},
			wantWhere: "WHERE book_id = $1",
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "title only",
			filter:    domain.Filter{Title: "1984"},
			wantWhere: "WHERE title ILIKE '%' || $1 || '%'",
			wantArgs:  []any{"1984"},
		},
		{
			name:      "author only",
			filter:    domain.Filter{Author: "orwell"},
			wantWhere: "WHERE author ILIKE '%' || $1 || '%'",
			wantArgs:  []any{"orwell"},
		},
		{
			name:      "id and title",
			filter:    domain.Filter{ID: int64Ptr(2), Title: "farm"},
			wantWhere: "WHERE book_id = $1 AND title ILIKE '%' || $2 || '%'",
			wantArgs:  []any{int64(2), "farm"},
		},
		{
			name:      "id and author",
			filter:    domain.Filter{ID: int64Ptr(2), Author: "lee"},
			wantWhere: "WHERE book_id = $1 AND author ILIKE '%' || $2 || '%'",
			wantArgs:  []any{int64(2), "lee"},
		},
		{
			name:      "title and author",
			filter:    domain.Filter{Title: "mock", Author: "lee"},
			wantWhere: "WHERE title ILIKE '%' || $1 || '%' AND author ILIKE '%' || $2 || '%'",
			wantArgs:  []any{"mock", "lee"},
		},
		{
			name:      "all fields",
			filter:    domain.Filter{ID: int64Ptr(9), Title: "moby", Author: "melville"},
			wantWhere: "WHERE book_id = $1 AND title ILIKE '%' || $2 || '%' AND author ILIKE '%' || $3 || '%'",
			wantArgs:  []any{int64(9), "moby", "melville"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, args := buildBooksQuery(tt.filter)

			require.Equal(t, "SELECT book_id, title, author, is_available FROM books "+tt.wantWhere, query)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildBooksQuery_InjectionPayloadStaysBound(t *testing.T) {
	t.Parallel()

	payload := "' OR '1'='1"
	query, args := buildBooksQuery(domain.Filter{Title: payload})

	// The payload must travel as a bound argument; the SQL text never
	// contains filter values.
	require.NotContains(t, query, payload)
	require.Equal(t, []any{payload}, args)
	require.Equal(t, 1, strings.Count(query, "$1"))
}
