package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taxonomy-service/internal/models"
)

var (
	ErrPOMDefinitionNotFound = errors.New("pom definition not found")
	ErrPOMCodeExists         = errors.New("pom definition with this code already exists")
)

type POMRepository struct {
	db *gorm.DB
}

func NewPOMRepository(db *gorm.DB) *POMRepository {
	return &POMRepository{db: db}
}

// CreatePOMCategory creates a measurement group
func (r *POMRepository) CreatePOMCategory(category *models.POMCategory) error {
	return r.db.Create(category).Error
}

// ListPOMCategories returns all groups with their definitions
func (r *POMRepository) ListPOMCategories() ([]models.POMCategory, error) {
	var categories []models.POMCategory
	err := r.db.Preload("Definitions", func(db *gorm.DB) *gorm.DB {
		return db.Order("pom_definitions.code ASC")
	}).Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

// CreatePOMDefinition creates a measurement definition; codes are unique
func (r *POMRepository) CreatePOMDefinition(def *models.POMDefinition) error {
	var count int64
	if err := r.db.Model(&models.POMDefinition{}).
		Where("code = ?", def.Code).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPOMCodeExists
	}
	return r.db.Create(def).Error
}

// ListPOMDefinitions returns all definitions ordered by code
func (r *POMRepository) ListPOMDefinitions() ([]models.POMDefinition, error) {
	var defs []models.POMDefinition
	err := r.db.Order("code ASC").Find(&defs).Error
	return defs, err
}

// ReplaceApparelPOMs swaps the entire link set for one apparel category in a
// single transaction, so old links are never visible interleaved with new
// ones. Every referenced POM must exist.
func (r *POMRepository) ReplaceApparelPOMs(apparelCategoryID uuid.UUID, links []models.POMLinkItem) ([]models.ApparelPOMLink, error) {
	var saved []models.ApparelPOMLink
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var categoryCount int64
		if err := tx.Model(&models.Category{}).
			Where("id = ?", apparelCategoryID).
			Count(&categoryCount).Error; err != nil {
			return err
		}
		if categoryCount == 0 {
			return ErrCategoryNotFound
		}

		for _, link := range links {
			var pomCount int64
			if err := tx.Model(&models.POMDefinition{}).
				Where("id = ?", link.POMID).
				Count(&pomCount).Error; err != nil {
				return err
			}
			if pomCount == 0 {
				return ErrPOMDefinitionNotFound
			}
		}

		if err := tx.Where("apparel_category_id = ?", apparelCategoryID).
			Delete(&models.ApparelPOMLink{}).Error; err != nil {
			return err
		}

		for _, link := range links {
			row := models.ApparelPOMLink{
				ID:                uuid.New(),
				ApparelCategoryID: apparelCategoryID,
				POMID:             link.POMID,
				IsRequired:        link.IsRequired,
				SortOrder:         link.SortOrder,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetApparelPOMs returns the linked definitions for an apparel category in
// sort order
func (r *POMRepository) GetApparelPOMs(apparelCategoryID uuid.UUID) ([]models.ApparelPOMLink, error) {
	var categoryCount int64
	if err := r.db.Model(&models.Category{}).
		Where("id = ?", apparelCategoryID).
		Count(&categoryCount).Error; err != nil {
		return nil, err
	}
	if categoryCount == 0 {
		return nil, ErrCategoryNotFound
	}

	var links []models.ApparelPOMLink
	err := r.db.Preload("Definition").
		Where("apparel_category_id = ?", apparelCategoryID).
		Order("sort_order ASC").
		Find(&links).Error
	return links, err
}
