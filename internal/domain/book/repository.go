package book

import "context"

// Repository defines persistence behaviours for catalog books.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Book, error)
}
