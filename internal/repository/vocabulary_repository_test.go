package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonomy-service/internal/models"
)

func TestVocabularyListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVocabularyRepository(db)

	require.NoError(t, repo.CreateSize(&models.Size{ID: uuid.New(), Name: "M", SortOrder: 2}))
	require.NoError(t, repo.CreateSize(&models.Size{ID: uuid.New(), Name: "S", SortOrder: 1}))
	require.NoError(t, repo.CreateSize(&models.Size{ID: uuid.New(), Name: "L", SortOrder: 3}))

	sizes, err := repo.ListSizes()
	require.NoError(t, err)
	require.Len(t, sizes, 3)
	assert.Equal(t, "S", sizes[0].Name)
	assert.Equal(t, "M", sizes[1].Name)
	assert.Equal(t, "L", sizes[2].Name)
}

func TestVocabularyNameLookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVocabularyRepository(db)

	red := &models.Color{ID: uuid.New(), Name: "Red", Hex: "#FF0000"}
	require.NoError(t, repo.CreateColor(red))
	slim := &models.Fit{ID: uuid.New(), Name: "Slim"}
	require.NoError(t, repo.CreateFit(slim))

	t.Run("known ids resolve", func(t *testing.T) {
		name, ok := repo.ColorName(red.ID)
		assert.True(t, ok)
		assert.Equal(t, "Red", name)

		name, ok = repo.FitName(slim.ID)
		assert.True(t, ok)
		assert.Equal(t, "Slim", name)
	})

	t.Run("unknown id degrades without error", func(t *testing.T) {
		name, ok := repo.ColorName(uuid.New())
		assert.False(t, ok)
		assert.Empty(t, name)
	})
}
