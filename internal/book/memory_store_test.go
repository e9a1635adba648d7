package book

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ListKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore(SeedData())
	ctx := context.Background()

	_, err := s.Create(ctx, Book{Title: "Third", Author: "C", Year: 2000})
	require.NoError(t, err)

	books, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{books[0].ID, books[1].ID, books[2].ID})
}

func TestMemoryStore_ListEmptyIsNotNil(t *testing.T) {
	books, err := NewMemoryStore(nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := NewMemoryStore(SeedData())
	ctx := context.Background()

	books, err := s.List(ctx)
	require.NoError(t, err)
	books[0].Title = "mutated"

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "How to be a professional cook", got.Title)
}

func TestMemoryStore_Get(t *testing.T) {
	s := NewMemoryStore(SeedData())

	t.Run("found", func(t *testing.T) {
		b, err := s.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "1992", b.Title)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get(context.Background(), 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore_CreateAssignsIncreasingIDs(t *testing.T) {
	s := NewMemoryStore([]Book{{ID: 7, Title: "Seed", Author: "A", Year: 2001}})
	ctx := context.Background()

	first, err := s.Create(ctx, Book{ID: 1, Title: "One", Author: "A", Year: 2001})
	require.NoError(t, err)
	assert.Equal(t, int64(8), first.ID, "caller supplied id must be ignored")

	require.NoError(t, s.Delete(ctx, first.ID))

	second, err := s.Create(ctx, Book{Title: "Two", Author: "A", Year: 2001})
	require.NoError(t, err)
	assert.Equal(t, int64(9), second.ID, "ids are not reused after delete")
}

func TestMemoryStore_UpdatePartial(t *testing.T) {
	s := NewMemoryStore(SeedData())
	ctx := context.Background()
	title := "Updated Title"
	year := 2023

	updated, err := s.Update(ctx, 1, Patch{Title: &title, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, Book{ID: 1, Title: "Updated Title", Author: "Pewdiepie", Year: 2023}, updated)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = s.Update(ctx, 999, Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore(SeedData())
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, 1))
	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), ErrNotFound)

	books, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)
}

func TestMemoryStore_ConcurrentCreateYieldsUniqueIDs(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := s.Create(ctx, Book{Title: "T", Author: "A", Year: 2000})
			if err == nil {
				ids <- b.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestPatch_Apply(t *testing.T) {
	author := "Someone Else"
	b := Book{ID: 3, Title: "T", Author: "A", Year: 1999}

	assert.Equal(t, Book{ID: 3, Title: "T", Author: "Someone Else", Year: 1999}, Patch{Author: &author}.Apply(b))
	assert.Equal(t, b, Patch{}.Apply(b))
	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Author: &author}.Empty())
}
