package importer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreatesOncePerKey(t *testing.T) {
	store := newFakeStorage()
	registry := NewSubcategoryRegistry()
	ctx := context.Background()

	sub1, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, sub1)

	sub2, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.NoError(t, err)
	assert.False(t, created, "second request for the same pair reuses the first create")
	assert.Equal(t, sub1.ID, sub2.ID)

	assert.Equal(t, 1, registry.CreatedCount())
	assert.Len(t, store.subcategories, 1)
}

func TestRegistry_KeyIsCategoryScoped(t *testing.T) {
	store := newFakeStorage()
	registry := NewSubcategoryRegistry()
	ctx := context.Background()

	_, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = registry.Ensure(ctx, store, "Detergent", 2)
	require.NoError(t, err)
	assert.True(t, created, "same name under a different category is a distinct subcategory")

	assert.Equal(t, 2, registry.CreatedCount())
}

func TestRegistry_KeyNormalizesName(t *testing.T) {
	store := newFakeStorage()
	registry := NewSubcategoryRegistry()
	ctx := context.Background()

	_, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = registry.Ensure(ctx, store, "  DETERGENT  ", 1)
	require.NoError(t, err)
	assert.False(t, created, "case and whitespace variants collapse to one key")

	assert.Equal(t, 1, registry.CreatedCount())
}

func TestRegistry_CreateErrorIsNotCached(t *testing.T) {
	store := newFakeStorage()
	store.subCreateErr = assert.AnError
	registry := NewSubcategoryRegistry()
	ctx := context.Background()

	_, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.Error(t, err)
	assert.False(t, created)
	assert.Equal(t, 0, registry.CreatedCount())

	// Once storage recovers, the same key can be created.
	store.subCreateErr = nil
	sub, created, err := registry.Ensure(ctx, store, "Detergent", 1)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, sub)
}

func TestRegistry_ConcurrentEnsure(t *testing.T) {
	store := newFakeStorage()
	registry := NewSubcategoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	createdCount := make(chan bool, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := registry.Ensure(ctx, store, "Detergent", 1)
			assert.NoError(t, err)
			createdCount <- created
		}()
	}
	wg.Wait()
	close(createdCount)

	total := 0
	for created := range createdCount {
		if created {
			total++
		}
	}
	assert.Equal(t, 1, total, "exactly one goroutine performs the create")
	assert.Len(t, store.subcategories, 1)
}
