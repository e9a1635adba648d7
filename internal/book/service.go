package book

import (
	"context"
	"log/slog"
	"strings"
)

// Service provides book-related business logic.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new book service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// List returns every book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.store.List(ctx)
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.store.Get(ctx, id)
}

// Create validates b and stores it under a fresh id.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	if err := validateText("title", b.Title); err != nil {
		return Book{}, err
	}
	if err := validateText("author", b.Author); err != nil {
		return Book{}, err
	}
	if err := validateYear(b.Year); err != nil {
		return Book{}, err
	}

	created, err := s.store.Create(ctx, b)
	if err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book created", bookAttrs(created)...)
	return created, nil
}

// Update applies p to the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	if p.Title != nil {
		if err := validateText("title", *p.Title); err != nil {
			return Book{}, err
		}
	}
	if p.Author != nil {
		if err := validateText("author", *p.Author); err != nil {
			return Book{}, err
		}
	}
	if p.Year != nil {
		if err := validateYear(*p.Year); err != nil {
			return Book{}, err
		}
	}
	if p.Empty() {
		return s.store.Get(ctx, id)
	}

	updated, err := s.store.Update(ctx, id, p)
	if err != nil {
		return Book{}, err
	}
	s.logger.InfoContext(ctx, "book updated", bookAttrs(updated)...)
	return updated, nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "book deleted", "id", id)
	return nil
}

func validateText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalidf("Invalid %s provided", field)
	}
	return nil
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return invalidf("Invalid year provided")
	}
	return nil
}

func bookAttrs(b Book) []any {
	return []any{"id", b.ID, "title", b.Title, "author", b.Author, "year", b.Year}
}
