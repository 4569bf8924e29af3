package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taxonomy-service/internal/models"
)

func newSKU(code, name, brandID string) *models.SKU {
	return &models.SKU{
		ID:      uuid.New(),
		Code:    code,
		Name:    name,
		BrandID: brandID,
	}
}

func TestGenerateBatch(t *testing.T) {
	t.Run("all combinations succeed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSKURepository(db, nil, 20, 100)

		result, err := repo.GenerateBatch([]*models.SKU{
			newSKU("SKU-AA-0001", "Tee (Red) [S]", "brand-1"),
			newSKU("SKU-AA-0002", "Tee (Red) [M]", "brand-1"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 2, result.Success)
		assert.Zero(t, result.Failed)
		assert.Empty(t, result.Errors)
	})

	t.Run("duplicate code fails that combination only", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSKURepository(db, nil, 20, 100)

		_, err := repo.GenerateBatch([]*models.SKU{
			newSKU("SKU-BB-0001", "Tee (Red) [S]", "brand-1"),
		})
		require.NoError(t, err)

		result, err := repo.GenerateBatch([]*models.SKU{
			newSKU("SKU-BB-0001", "Tee (Red) [S]", "brand-1"),
			newSKU("SKU-BB-0002", "Tee (Red) [M]", "brand-1"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Success)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 0, result.Errors[0].Index)
		assert.Equal(t, "DUPLICATE_CODE", result.Errors[0].Code)

		// The successful row persisted
		var count int64
		db.Model(&models.SKU{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("all failed rolls back everything", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSKURepository(db, nil, 20, 100)

		_, err := repo.GenerateBatch([]*models.SKU{
			newSKU("SKU-CC-0001", "Tee", "brand-1"),
		})
		require.NoError(t, err)

		result, err := repo.GenerateBatch([]*models.SKU{
			newSKU("SKU-CC-0001", "Tee again", "brand-1"),
		})
		require.Error(t, err)
		assert.Zero(t, result.Success)
		require.Len(t, result.Errors, 1)

		var count int64
		db.Model(&models.SKU{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestSKULifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSKURepository(db, nil, 20, 100)

	sku := newSKU("SKU-DD-0001", "Tee (Red) [S]", "brand-1")
	_, err := repo.GenerateBatch([]*models.SKU{sku})
	require.NoError(t, err)

	t.Run("trash hides from active reads", func(t *testing.T) {
		require.NoError(t, repo.Delete(sku.ID))

		_, err := repo.GetByID(sku.ID)
		assert.ErrorIs(t, err, ErrSKUNotFound)
	})

	t.Run("restore clears the deletion timestamp", func(t *testing.T) {
		restored, err := repo.Restore(sku.ID)
		require.NoError(t, err)
		assert.Nil(t, restored.DeletedAt)

		reread, err := repo.GetByID(sku.ID)
		require.NoError(t, err)
		assert.Equal(t, sku.Code, reread.Code)
	})

	t.Run("restore on active is a conflict", func(t *testing.T) {
		_, err := repo.Restore(sku.ID)
		assert.ErrorIs(t, err, ErrSKUNotTrashed)
	})

	t.Run("purge on active is a conflict", func(t *testing.T) {
		assert.ErrorIs(t, repo.PermanentDelete(sku.ID), ErrSKUNotTrashed)
	})

	t.Run("purge from trash is terminal", func(t *testing.T) {
		require.NoError(t, repo.Delete(sku.ID))
		require.NoError(t, repo.PermanentDelete(sku.ID))

		_, err := repo.Restore(sku.ID)
		assert.ErrorIs(t, err, ErrSKUNotFound)

		var count int64
		db.Unscoped().Model(&models.SKU{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("lifecycle ops on unknown id", func(t *testing.T) {
		missing := uuid.New()
		assert.ErrorIs(t, repo.Delete(missing), ErrSKUNotFound)
		_, err := repo.Restore(missing)
		assert.ErrorIs(t, err, ErrSKUNotFound)
		assert.ErrorIs(t, repo.PermanentDelete(missing), ErrSKUNotFound)
	})
}

func TestSKUListing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSKURepository(db, nil, 20, 100)

	_, err := repo.GenerateBatch([]*models.SKU{
		newSKU("SKU-EE-0001", "Acme Tee (Red) [S]", "brand-1"),
		newSKU("SKU-EE-0002", "Acme Tee (Red) [M]", "brand-1"),
		newSKU("SKU-EE-0003", "Bolt Hoodie (Black) [L]", "brand-2"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(uuidByCode(t, db, "SKU-EE-0003")))

	t.Run("active excludes trashed", func(t *testing.T) {
		skus, total, err := repo.ListActive(&models.SKUFilters{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, skus, 2)
	})

	t.Run("trash view only shows trashed", func(t *testing.T) {
		skus, total, err := repo.ListTrashed(&models.SKUFilters{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, skus, 1)
		assert.Equal(t, "SKU-EE-0003", skus[0].Code)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		search := "acme tee"
		skus, total, err := repo.ListActive(&models.SKUFilters{Search: &search, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, skus, 2)
	})

	t.Run("search matches code", func(t *testing.T) {
		search := "sku-ee-0002"
		_, total, err := repo.ListActive(&models.SKUFilters{Search: &search, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("brand filter", func(t *testing.T) {
		brand := "brand-2"
		_, total, err := repo.ListTrashed(&models.SKUFilters{BrandID: &brand, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination clamps bad values", func(t *testing.T) {
		skus, total, err := repo.ListActive(&models.SKUFilters{Page: 0, Limit: -5})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, skus, 2)
	})

	t.Run("configured page sizes drive the clamp", func(t *testing.T) {
		small := NewSKURepository(db, nil, 1, 1)

		skus, total, err := small.ListActive(&models.SKUFilters{Page: 1, Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, skus, 1)

		// Over the configured maximum falls back to the configured default
		skus, _, err = small.ListActive(&models.SKUFilters{Page: 1, Limit: 50})
		require.NoError(t, err)
		assert.Len(t, skus, 1)
	})
}

func uuidByCode(t *testing.T, db *gorm.DB, code string) uuid.UUID {
	t.Helper()
	var sku models.SKU
	require.NoError(t, db.Where("code = ?", code).First(&sku).Error)
	return sku.ID
}
