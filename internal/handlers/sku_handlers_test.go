package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

func requestedSKU(code string, colorID, sizeID uuid.UUID) *models.SKU {
	return &models.SKU{
		ID:      uuid.New(),
		Code:    code,
		Name:    "Acme Classic Tee",
		BrandID: "brand-1",
		Metadata: models.SKUMetadata{
			ColorID: &colorID,
			SizeID:  &sizeID,
		},
	}
}

func TestAssembleGenerateResults(t *testing.T) {
	red, blue := uuid.New(), uuid.New()
	small := uuid.New()

	t.Run("failed first combination keeps both indices correct", func(t *testing.T) {
		requested := []*models.SKU{
			requestedSKU("SKU-XX-0001", red, small),
			requestedSKU("SKU-XX-0002", blue, small),
		}
		batch := &repository.GenerateBatchResult{
			Created: []*models.SKU{requested[1]},
			Errors: []repository.GenerateBatchError{
				{Index: 0, ColorID: &red, SizeID: &small, Code: "DUPLICATE_CODE", Message: "SKU code SKU-XX-0001 already exists"},
			},
			Total:   2,
			Success: 1,
			Failed:  1,
		}

		results := assembleGenerateResults(requested, batch)

		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Index)
		assert.False(t, results[0].Success)
		require.NotNil(t, results[0].Error)
		assert.Equal(t, "DUPLICATE_CODE", results[0].Error.Code)
		assert.Equal(t, red, *results[0].ColorID)

		assert.Equal(t, 1, results[1].Index)
		assert.True(t, results[1].Success)
		require.NotNil(t, results[1].SKU)
		assert.Equal(t, "SKU-XX-0002", results[1].SKU.Code)
		assert.Equal(t, blue, *results[1].ColorID)
	})

	t.Run("interleaved failures preserve request order", func(t *testing.T) {
		requested := []*models.SKU{
			requestedSKU("SKU-YY-0001", red, small),
			requestedSKU("SKU-YY-0002", blue, small),
			requestedSKU("SKU-YY-0003", red, small),
		}
		batch := &repository.GenerateBatchResult{
			Created: []*models.SKU{requested[0], requested[2]},
			Errors: []repository.GenerateBatchError{
				{Index: 1, ColorID: &blue, SizeID: &small, Code: "DUPLICATE_CODE", Message: "SKU code SKU-YY-0002 already exists"},
			},
			Total:   3,
			Success: 2,
			Failed:  1,
		}

		results := assembleGenerateResults(requested, batch)

		require.Len(t, results, 3)
		for i, item := range results {
			assert.Equal(t, i, item.Index)
		}
		assert.True(t, results[0].Success)
		assert.Equal(t, "SKU-YY-0001", results[0].SKU.Code)
		assert.False(t, results[1].Success)
		assert.True(t, results[2].Success)
		assert.Equal(t, "SKU-YY-0003", results[2].SKU.Code)
	})

	t.Run("all successes", func(t *testing.T) {
		requested := []*models.SKU{
			requestedSKU("SKU-ZZ-0001", red, small),
			requestedSKU("SKU-ZZ-0002", blue, small),
		}
		batch := &repository.GenerateBatchResult{
			Created: requested,
			Total:   2,
			Success: 2,
		}

		results := assembleGenerateResults(requested, batch)

		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Index)
		assert.Equal(t, 1, results[1].Index)
		assert.True(t, results[0].Success)
		assert.True(t, results[1].Success)
	})
}
