package postgres

import (
	"context"
	"fmt"

	domain "library/backend/internal/domain/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookRepository reads catalog books from PostgreSQL.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository constructs a repository.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

// List returns books matching the filter. An empty result is not an error.
func (r *BookRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
	query, args := buildBooksQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// buildBooksQuery assembles a SELECT over the books table from the filter.
// Conditions are ANDed in the fixed order id, title, author; filter values are
// always bound as parameters, never interpolated into the SQL text. Title and
// author match as case-insensitive substrings.
func buildBooksQuery(filter domain.Filter) (string, []any) {
	query := `SELECT book_id, title, author, is_available FROM books`

	var args []any
	var conditions []string
	if filter.ID != nil {
		args = append(args, *filter.ID)
		conditions = append(conditions, fmt.Sprintf("book_id = $%d", len(args)))
	}
	if filter.Title != "" {
		args = append(args, filter.Title)
		conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Author != "" {
		args = append(args, filter.Author)
		conditions = append(conditions, fmt.Sprintf("author ILIKE '%%' || $%d || '%%'", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	return query, args
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.IsAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
