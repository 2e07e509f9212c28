package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_LoadsEmbeddedCatalogInOrder(t *testing.T) {
	products, err := Seed()

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for i, p := range products {
		assert.Equal(t, i, p.Position)
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.True(t, p.Category.Valid(), "seed product %s has unknown category %q", p.ID, p.Category)
		assert.False(t, p.Price.IsNegative())
	}
}

func TestMemoryRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository(testCatalog())

	first, err := repo.List(context.Background())
	require.NoError(t, err)

	first[0].Name = "mutated"

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ethereal Canvas Print", second[0].Name)
}

func TestMemoryRepository_Get(t *testing.T) {
	repo := NewMemoryRepository(testCatalog())

	product, err := repo.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Mystic Sculpture", product.Name)

	_, err = repo.Get(context.Background(), "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
