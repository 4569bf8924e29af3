package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"taxonomy-service/internal/models"
)

// Cache TTL constants
const (
	SKUListCacheTTL = 2 * time.Minute // SKU lists change often
)

var (
	ErrSKUNotFound   = errors.New("sku not found")
	ErrSKUNotTrashed = errors.New("sku must be trashed first")
)

type SKURepository struct {
	db           *gorm.DB
	redis        *redis.Client
	defaultLimit int
	maxLimit     int
}

func NewSKURepository(db *gorm.DB, redis *redis.Client, defaultLimit, maxLimit int) *SKURepository {
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = 100
	}
	return &SKURepository{
		db:           db,
		redis:        redis,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// generateListCacheKey creates a deterministic cache key for list queries
func generateListCacheKey(prefix string, params interface{}) string {
	data, _ := json.Marshal(params)
	hash := md5.Sum(data)
	return fmt.Sprintf("taxonomy:skus:%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// invalidateSKUListCaches drops all cached SKU listings
func (r *SKURepository) invalidateSKUListCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	keys, _ := r.redis.Keys(ctx, "taxonomy:skus:*").Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// GenerateBatchResult reports the outcome of one materialization batch
type GenerateBatchResult struct {
	Created []*models.SKU
	Errors  []GenerateBatchError
	Total   int
	Success int
	Failed  int
}

// GenerateBatchError represents a failed (color, size) combination
type GenerateBatchError struct {
	Index   int
	ColorID *uuid.UUID
	SizeID  *uuid.UUID
	Code    string
	Message string
}

// GenerateBatch persists a materialized batch in one transaction.
// Combinations that fail validation (duplicate code) are collected per item;
// the successes commit together. If every combination fails the transaction
// rolls back. A mid-batch database error rolls back the whole batch, so a
// partial write is never silent: the caller gets either the per-item result
// set or an error.
func (r *SKURepository) GenerateBatch(skus []*models.SKU) (*GenerateBatchResult, error) {
	result := &GenerateBatchResult{
		Created: make([]*models.SKU, 0, len(skus)),
		Errors:  make([]GenerateBatchError, 0),
		Total:   len(skus),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i, sku := range skus {
			var count int64
			if err := tx.Model(&models.SKU{}).
				Where("code = ?", sku.Code).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				result.Errors = append(result.Errors, GenerateBatchError{
					Index:   i,
					ColorID: sku.Metadata.ColorID,
					SizeID:  sku.Metadata.SizeID,
					Code:    "DUPLICATE_CODE",
					Message: fmt.Sprintf("SKU code %s already exists", sku.Code),
				})
				continue
			}
			if err := tx.Create(sku).Error; err != nil {
				return err
			}
			result.Created = append(result.Created, sku)
		}

		result.Success = len(result.Created)
		result.Failed = len(result.Errors)

		if result.Success == 0 && result.Total > 0 {
			return errors.New("all combinations failed to materialize")
		}
		return nil
	})

	if err != nil && result.Success == 0 {
		return result, err
	}
	if result.Success > 0 {
		r.invalidateSKUListCaches(context.Background())
	}
	return result, nil
}

// GetByID retrieves an active SKU
func (r *SKURepository) GetByID(id uuid.UUID) (*models.SKU, error) {
	var sku models.SKU
	err := r.db.Where("id = ?", id).First(&sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// getByIDAny retrieves a SKU regardless of lifecycle state
func (r *SKURepository) getByIDAny(id uuid.UUID) (*models.SKU, error) {
	var sku models.SKU
	err := r.db.Unscoped().Where("id = ?", id).First(&sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// Update saves an edited active SKU
func (r *SKURepository) Update(sku *models.SKU) error {
	sku.UpdatedAt = time.Now()
	err := r.db.Save(sku).Error
	if err == nil {
		r.invalidateSKUListCaches(context.Background())
	}
	return err
}

// Delete moves an active SKU to the trash (Active → Trashed)
func (r *SKURepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.SKU{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSKUNotFound
	}
	r.invalidateSKUListCaches(context.Background())
	return nil
}

// Restore brings a trashed SKU back to active (Trashed → Active) and clears
// the deletion timestamp. Only valid from the trash.
func (r *SKURepository) Restore(id uuid.UUID) (*models.SKU, error) {
	sku, err := r.getByIDAny(id)
	if err != nil {
		return nil, err
	}
	if sku.DeletedAt == nil || !sku.DeletedAt.Valid {
		return nil, ErrSKUNotTrashed
	}
	if err := r.db.Unscoped().Model(&models.SKU{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error; err != nil {
		return nil, err
	}
	r.invalidateSKUListCaches(context.Background())
	return r.GetByID(id)
}

// PermanentDelete purges a trashed SKU (Trashed → Purged, terminal). Calling
// it on an active SKU is a state-transition error, enforced here rather than
// assumed from UI flow.
func (r *SKURepository) PermanentDelete(id uuid.UUID) error {
	sku, err := r.getByIDAny(id)
	if err != nil {
		return err
	}
	if sku.DeletedAt == nil || !sku.DeletedAt.Valid {
		return ErrSKUNotTrashed
	}
	if err := r.db.Unscoped().Delete(&models.SKU{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.invalidateSKUListCaches(context.Background())
	return nil
}

// ListActive returns active SKUs with search and brand filters, cached
func (r *SKURepository) ListActive(filters *models.SKUFilters) ([]models.SKU, int64, error) {
	return r.list(filters, false)
}

// ListTrashed returns trashed SKUs with the same filters
func (r *SKURepository) ListTrashed(filters *models.SKUFilters) ([]models.SKU, int64, error) {
	return r.list(filters, true)
}

func (r *SKURepository) list(filters *models.SKUFilters, trashed bool) ([]models.SKU, int64, error) {
	ctx := context.Background()
	prefix := "list:active"
	if trashed {
		prefix = "list:trashed"
	}
	cacheKey := generateListCacheKey(prefix, filters)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			type listResult struct {
				SKUs  []models.SKU `json:"skus"`
				Total int64        `json:"total"`
			}
			var cached listResult
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.SKUs, cached.Total, nil
			}
		}
	}

	query := r.db.Model(&models.SKU{})
	if trashed {
		query = query.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if filters.Search != nil && *filters.Search != "" {
		term := "%" + strings.ToLower(*filters.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(code) LIKE ?", term, term)
	}
	if filters.BrandID != nil && *filters.BrandID != "" {
		query = query.Where("brand_id = ?", *filters.BrandID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > r.maxLimit {
		limit = r.defaultLimit
	}

	var skus []models.SKU
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&skus).Error
	if err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		type listResult struct {
			SKUs  []models.SKU `json:"skus"`
			Total int64        `json:"total"`
		}
		data, err := json.Marshal(listResult{SKUs: skus, Total: total})
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, SKUListCacheTTL)
		}
	}

	return skus, total, nil
}
