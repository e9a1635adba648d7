package book

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks bookcatalog/internal/book Store

// Store defines the contract for book data storage.
type Store interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, id int64, p Patch) (Book, error)
	Delete(ctx context.Context, id int64) error
}
