package book

import (
	"context"

	domain "library/backend/internal/domain/book"
)

// Service encapsulates catalog use cases.
type Service struct {
	repo domain.Repository
}

// NewService constructs a book service.
func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves books matching the filter. Zero matches is a normal outcome
// reported as an empty slice.
func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Book, error) {
	return s.repo.List(ctx, filter)
}
