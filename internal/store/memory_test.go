package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/catalog/internal/model"
)

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Save(ctx, &model.Product{Name: "Laptop"})
	require.NoError(t, err)
	second, err := s.Save(ctx, &model.Product{Name: "Watch"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestMemoryStore_SaveDoesNotAliasInput(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := &model.Product{Name: "Laptop"}
	saved, err := s.Save(ctx, in)
	require.NoError(t, err)

	in.Name = "changed"
	got, found, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Laptop", got.Name)
	assert.Equal(t, int64(0), in.ID)
}

func TestMemoryStore_FindByID_Missing(t *testing.T) {
	s := NewMemoryStore()

	got, found, err := s.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, &model.Product{Name: "Laptop", Price: 999.99, Stock: 10})
	require.NoError(t, err)

	_, err = s.Save(ctx, &model.Product{ID: saved.ID, Name: "Laptop Pro"})
	require.NoError(t, err)

	got, found, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.Product{ID: saved.ID, Name: "Laptop Pro"}, *got)
}

func TestMemoryStore_SaveExplicitIDMovesSequence(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Save(ctx, &model.Product{ID: 5, Name: "Watch"})
	require.NoError(t, err)

	next, err := s.Save(ctx, &model.Product{Name: "Backpack"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), next.ID)
}

func TestMemoryStore_FindAllOrdered(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []int64{7, 3, 5} {
		_, err := s.Save(ctx, &model.Product{ID: id})
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].ID)
	assert.Equal(t, int64(5), all[1].ID)
	assert.Equal(t, int64(7), all[2].ID)
}

func TestMemoryStore_FindAllEmpty(t *testing.T) {
	all, err := NewMemoryStore().FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, &model.Product{Name: "Laptop"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, saved.ID))
	require.NoError(t, s.DeleteByID(ctx, saved.ID))

	_, found, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Save(ctx, &model.Product{Name: "item"})
		}()
	}
	wg.Wait()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
