package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taxonomy-service/internal/models"
)

// Cache TTL constants
const (
	CategoryCacheTTL        = 30 * time.Minute // Taxonomy rarely changes
	AttributeMatrixCacheTTL = 15 * time.Minute // Full matrix reads
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrAttributeTypeNotFound = errors.New("attribute type not found")
	ErrAttributeTypeExists   = errors.New("attribute type with this slug already exists")
	ErrCategoryDepthExceeded = errors.New("parent must be a root apparel category")
)

type CategoryRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCategoryRepository(db *gorm.DB, redis *redis.Client) *CategoryRepository {
	return &CategoryRepository{
		db:    db,
		redis: redis,
	}
}

// invalidateTaxonomyCaches drops cached category lists and the attribute matrix
func (r *CategoryRepository) invalidateTaxonomyCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	keys, _ := r.redis.Keys(ctx, "taxonomy:categories:*").Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
	r.redis.Del(ctx, "taxonomy:attributes:all")
}

// Create creates a category. Style categories must point at a root apparel
// category; anything deeper is rejected.
func (r *CategoryRepository) Create(category *models.Category) error {
	if category.ParentID != nil {
		var parent models.Category
		err := r.db.Where("id = ?", *category.ParentID).First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if parent.ParentID != nil {
			return ErrCategoryDepthExceeded
		}
	}
	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateTaxonomyCaches(context.Background())
	}
	return err
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves all categories ordered for display, cached
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	ctx := context.Background()
	cacheKey := "taxonomy:categories:list"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	err := r.db.Order("sort_order ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(categories)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return categories, nil
}

// GetChildren retrieves the style categories under an apparel category
func (r *CategoryRepository) GetChildren(parentID uuid.UUID) ([]models.Category, error) {
	if _, err := r.GetByID(parentID); err != nil {
		return nil, err
	}
	var children []models.Category
	err := r.db.Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&children).Error
	return children, err
}

// Rename updates a category's name only
func (r *CategoryRepository) Rename(id uuid.UUID, name string) (*models.Category, error) {
	category, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := r.db.Save(category).Error; err != nil {
		return nil, err
	}
	r.invalidateTaxonomyCaches(context.Background())
	return category, nil
}

// Delete hard-deletes a category, its children, every attribute-matrix row
// they own and any POM links, all in one transaction. Irreversible. SKUs that
// reference the category keep their denormalized names.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var childIDs []uuid.UUID
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", id).
			Pluck("id", &childIDs).Error; err != nil {
			return err
		}

		affected := append([]uuid.UUID{id}, childIDs...)
		if err := tx.Where("category_id IN ?", affected).
			Delete(&models.CategoryAttributeValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("apparel_category_id IN ?", affected).
			Delete(&models.ApparelPOMLink{}).Error; err != nil {
			return err
		}
		if len(childIDs) > 0 {
			if err := tx.Where("id IN ?", childIDs).
				Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&category).Error
	})
	if err == nil {
		r.invalidateTaxonomyCaches(context.Background())
	}
	return err
}

// ============================================================================
// Attribute Type Registry
// ============================================================================

// EnsureAttributeTypes creates each required type if and only if no type with
// that slug exists. Existing names are never touched, so the operation is
// idempotent and safe to run on every boot.
func (r *CategoryRepository) EnsureAttributeTypes(required []models.RequiredAttributeType) (int, error) {
	created := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, req := range required {
			var count int64
			if err := tx.Model(&models.AttributeType{}).
				Where("slug = ?", req.Slug).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			attrType := models.AttributeType{
				ID:   uuid.New(),
				Slug: req.Slug,
				Name: req.Name,
			}
			if err := tx.Create(&attrType).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

// CreateAttributeType explicitly creates a type; a duplicate slug is a conflict
func (r *CategoryRepository) CreateAttributeType(attrType *models.AttributeType) error {
	var count int64
	if err := r.db.Model(&models.AttributeType{}).
		Where("slug = ?", attrType.Slug).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAttributeTypeExists
	}
	return r.db.Create(attrType).Error
}

// GetAttributeTypes lists the registry
func (r *CategoryRepository) GetAttributeTypes() ([]models.AttributeType, error) {
	var types []models.AttributeType
	err := r.db.Order("slug ASC").Find(&types).Error
	return types, err
}

// ============================================================================
// Category-Attribute Matrix
// ============================================================================

// SetAttribute upserts exactly one (category, slug) cell. The matrix is
// type-agnostic: multi-valued slugs must arrive JSON-encoded by the caller.
func (r *CategoryRepository) SetAttribute(categoryID uuid.UUID, slug, value string) (*models.CategoryAttributeValue, error) {
	if _, err := r.GetByID(categoryID); err != nil {
		return nil, err
	}
	var count int64
	if err := r.db.Model(&models.AttributeType{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrAttributeTypeNotFound
	}

	row := models.CategoryAttributeValue{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		AttributeSlug: slug,
		Value:         value,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "attribute_slug"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	r.invalidateTaxonomyCaches(context.Background())

	var saved models.CategoryAttributeValue
	if err := r.db.Where("category_id = ? AND attribute_slug = ?", categoryID, slug).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetAllAttributes returns the full sparse matrix, cached
func (r *CategoryRepository) GetAllAttributes() ([]models.CategoryAttributeValue, error) {
	ctx := context.Background()
	cacheKey := "taxonomy:attributes:all"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var rows []models.CategoryAttributeValue
			if err := json.Unmarshal([]byte(val), &rows); err == nil {
				return rows, nil
			}
		}
	}

	var rows []models.CategoryAttributeValue
	err := r.db.Order("category_id ASC, attribute_slug ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(rows)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, AttributeMatrixCacheTTL)
		}
	}

	return rows, nil
}

// GetAttribute reads one cell, mostly for tests and the SKU naming pipeline
func (r *CategoryRepository) GetAttribute(categoryID uuid.UUID, slug string) (*models.CategoryAttributeValue, error) {
	var row models.CategoryAttributeValue
	err := r.db.Where("category_id = ? AND attribute_slug = ?", categoryID, slug).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attribute %s for category %s: %w", slug, categoryID, gorm.ErrRecordNotFound)
		}
		return nil, err
	}
	return &row, nil
}
