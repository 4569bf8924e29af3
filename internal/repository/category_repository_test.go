package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonomy-service/internal/models"
)

func newCategory(name string, parentID *uuid.UUID) *models.Category {
	return &models.Category{
		ID:       uuid.New(),
		Name:     name,
		ParentID: parentID,
	}
}

func TestCategoryCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	t.Run("creates root and child", func(t *testing.T) {
		apparel := newCategory("Shirts", nil)
		require.NoError(t, repo.Create(apparel))

		style := newCategory("Oxford", &apparel.ID)
		require.NoError(t, repo.Create(style))

		children, err := repo.GetChildren(apparel.ID)
		require.NoError(t, err)
		assert.Len(t, children, 1)
		assert.Equal(t, "Oxford", children[0].Name)
	})

	t.Run("rejects grandchild", func(t *testing.T) {
		apparel := newCategory("Pants", nil)
		require.NoError(t, repo.Create(apparel))
		style := newCategory("Chino", &apparel.ID)
		require.NoError(t, repo.Create(style))

		grandchild := newCategory("Slim Chino", &style.ID)
		err := repo.Create(grandchild)
		assert.ErrorIs(t, err, ErrCategoryDepthExceeded)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		missing := uuid.New()
		err := repo.Create(newCategory("Orphan", &missing))
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestCategoryRename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	apparel := newCategory("Shrits", nil)
	require.NoError(t, repo.Create(apparel))

	renamed, err := repo.Rename(apparel.ID, "Shirts")
	require.NoError(t, err)
	assert.Equal(t, "Shirts", renamed.Name)

	reloaded, err := repo.GetByID(apparel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirts", reloaded.Name)

	_, err = repo.Rename(uuid.New(), "Nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)
	pomRepo := NewPOMRepository(db)

	apparel := newCategory("Shirts", nil)
	require.NoError(t, repo.Create(apparel))
	style := newCategory("Oxford", &apparel.ID)
	require.NoError(t, repo.Create(style))

	_, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)
	_, err = repo.SetAttribute(apparel.ID, "height-cm", "72")
	require.NoError(t, err)
	_, err = repo.SetAttribute(style.ID, "height-cm", "74")
	require.NoError(t, err)

	pomCategory := &models.POMCategory{ID: uuid.New(), Name: "Body"}
	require.NoError(t, pomRepo.CreatePOMCategory(pomCategory))
	pom := &models.POMDefinition{
		ID:            uuid.New(),
		Code:          "CHST",
		Name:          "Chest Width",
		POMCategoryID: pomCategory.ID,
	}
	require.NoError(t, pomRepo.CreatePOMDefinition(pom))
	_, err = pomRepo.ReplaceApparelPOMs(apparel.ID, []models.POMLinkItem{
		{POMID: pom.ID, IsRequired: true, SortOrder: 1},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(apparel.ID))

	_, err = repo.GetByID(apparel.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = repo.GetByID(style.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var matrixRows int64
	db.Model(&models.CategoryAttributeValue{}).Count(&matrixRows)
	assert.Zero(t, matrixRows)

	var linkRows int64
	db.Model(&models.ApparelPOMLink{}).Count(&linkRows)
	assert.Zero(t, linkRows)

	// The POM definition itself survives the cascade
	pomDefs, err := pomRepo.ListPOMDefinitions()
	require.NoError(t, err)
	assert.Len(t, pomDefs, 1)
}

func TestEnsureAttributeTypesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	created, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)
	assert.Equal(t, len(models.DefaultAttributeTypes), created)

	created, err = repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)
	assert.Zero(t, created)

	types, err := repo.GetAttributeTypes()
	require.NoError(t, err)
	assert.Len(t, types, len(models.DefaultAttributeTypes))
}

func TestEnsureAttributeTypesKeepsExistingNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	custom := &models.AttributeType{ID: uuid.New(), Slug: "height-cm", Name: "Height (custom)"}
	require.NoError(t, repo.CreateAttributeType(custom))

	_, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)

	types, err := repo.GetAttributeTypes()
	require.NoError(t, err)
	for _, at := range types {
		if at.Slug == "height-cm" {
			assert.Equal(t, "Height (custom)", at.Name)
		}
	}
}

func TestCreateAttributeTypeConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	first := &models.AttributeType{ID: uuid.New(), Slug: "season", Name: "Season"}
	require.NoError(t, repo.CreateAttributeType(first))

	dup := &models.AttributeType{ID: uuid.New(), Slug: "season", Name: "Season Again"}
	assert.ErrorIs(t, repo.CreateAttributeType(dup), ErrAttributeTypeExists)
}

func TestSetAttributeUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	apparel := newCategory("Shirts", nil)
	require.NoError(t, repo.Create(apparel))
	_, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)

	first, err := repo.SetAttribute(apparel.ID, "height-cm", "70")
	require.NoError(t, err)
	assert.Equal(t, "70", first.Value)

	second, err := repo.SetAttribute(apparel.ID, "height-cm", "72")
	require.NoError(t, err)
	assert.Equal(t, "72", second.Value)

	// Upsert, not insert: still exactly one row for the cell
	var count int64
	db.Model(&models.CategoryAttributeValue{}).
		Where("category_id = ? AND attribute_slug = ?", apparel.ID, "height-cm").
		Count(&count)
	assert.Equal(t, int64(1), count)

	t.Run("unknown slug rejected", func(t *testing.T) {
		_, err := repo.SetAttribute(apparel.ID, "no-such-slug", "x")
		assert.ErrorIs(t, err, ErrAttributeTypeNotFound)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := repo.SetAttribute(uuid.New(), "height-cm", "70")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestMultiValuedAttributeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	apparel := newCategory("Shirts", nil)
	require.NoError(t, repo.Create(apparel))
	_, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	encoded, err := models.EncodeIDList(ids)
	require.NoError(t, err)

	_, err = repo.SetAttribute(apparel.ID, models.AttrPossibleSizes, encoded)
	require.NoError(t, err)

	cell, err := repo.GetAttribute(apparel.ID, models.AttrPossibleSizes)
	require.NoError(t, err)

	decoded, err := models.DecodeIDList(cell.Value)
	require.NoError(t, err)
	assert.Equal(t, ids, decoded)
}

func TestGetAllAttributesSparseMatrix(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, nil)

	a := newCategory("Shirts", nil)
	b := newCategory("Pants", nil)
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	_, err := repo.EnsureAttributeTypes(models.DefaultAttributeTypes)
	require.NoError(t, err)

	_, err = repo.SetAttribute(a.ID, "height-cm", "70")
	require.NoError(t, err)
	_, err = repo.SetAttribute(a.ID, "weight-g", "180")
	require.NoError(t, err)
	_, err = repo.SetAttribute(b.ID, "height-cm", "100")
	require.NoError(t, err)

	rows, err := repo.GetAllAttributes()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
