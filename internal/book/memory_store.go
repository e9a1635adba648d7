package book

import (
	"context"
	"sync"
)

// MemoryStore keeps books in process memory in insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	books  []Book
	nextID int64
}

// NewMemoryStore constructs a MemoryStore seeded with the provided books.
// Ids are handed out from max(seed ids)+1 and never reused.
func NewMemoryStore(seed []Book) *MemoryStore {
	s := &MemoryStore{
		books:  make([]Book, 0, len(seed)),
		nextID: 1,
	}
	for _, b := range seed {
		s.books = append(s.books, b)
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	return s
}

func (s *MemoryStore) List(_ context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	return s.books[i], nil
}

func (s *MemoryStore) Create(_ context.Context, b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextID
	s.nextID++
	s.books = append(s.books, b)
	return b, nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, p Patch) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	s.books[i] = p.Apply(s.books[i])
	return s.books[i], nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// SeedData returns the sample books the service starts with.
func SeedData() []Book {
	return []Book{
		{ID: 1, Title: "How to be a professional cook", Author: "Pewdiepie", Year: 2014},
		{ID: 2, Title: "1992", Author: "Mike Tyson", Year: 1966},
	}
}
