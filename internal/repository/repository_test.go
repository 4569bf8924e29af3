package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taxonomy-service/internal/models"
)

// setupTestDB opens a throwaway in-memory database with the full schema.
// Repositories run without Redis here; caching is a nil-client no-op.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Category{},
		&models.AttributeType{},
		&models.CategoryAttributeValue{},
		&models.Size{},
		&models.Color{},
		&models.Fit{},
		&models.Pattern{},
		&models.Material{},
		&models.Gender{},
		&models.POMCategory{},
		&models.POMDefinition{},
		&models.ApparelPOMLink{},
		&models.SKU{},
	)
	require.NoError(t, err)

	return db
}
