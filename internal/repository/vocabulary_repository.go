package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"taxonomy-service/internal/models"
)

// VocabularyRepository serves the flat reference vocabularies: sizes, colors,
// fits, patterns, materials, genders. No caching; these tables are tiny and
// read inside the generation path where staleness would leak into SKU names.
type VocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

func (r *VocabularyRepository) CreateSize(size *models.Size) error {
	return r.db.Create(size).Error
}

func (r *VocabularyRepository) CreateColor(color *models.Color) error {
	return r.db.Create(color).Error
}

func (r *VocabularyRepository) CreateFit(fit *models.Fit) error {
	return r.db.Create(fit).Error
}

func (r *VocabularyRepository) CreatePattern(pattern *models.Pattern) error {
	return r.db.Create(pattern).Error
}

func (r *VocabularyRepository) CreateMaterial(material *models.Material) error {
	return r.db.Create(material).Error
}

func (r *VocabularyRepository) CreateGender(gender *models.Gender) error {
	return r.db.Create(gender).Error
}

func (r *VocabularyRepository) ListSizes() ([]models.Size, error) {
	var sizes []models.Size
	err := r.db.Order("sort_order ASC, name ASC").Find(&sizes).Error
	return sizes, err
}

func (r *VocabularyRepository) ListColors() ([]models.Color, error) {
	var colors []models.Color
	err := r.db.Order("sort_order ASC, name ASC").Find(&colors).Error
	return colors, err
}

func (r *VocabularyRepository) ListFits() ([]models.Fit, error) {
	var fits []models.Fit
	err := r.db.Order("sort_order ASC, name ASC").Find(&fits).Error
	return fits, err
}

func (r *VocabularyRepository) ListPatterns() ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := r.db.Order("sort_order ASC, name ASC").Find(&patterns).Error
	return patterns, err
}

func (r *VocabularyRepository) ListMaterials() ([]models.Material, error) {
	var materials []models.Material
	err := r.db.Order("sort_order ASC, name ASC").Find(&materials).Error
	return materials, err
}

func (r *VocabularyRepository) ListGenders() ([]models.Gender, error) {
	var genders []models.Gender
	err := r.db.Order("sort_order ASC, name ASC").Find(&genders).Error
	return genders, err
}

// Name lookups used by the SKU naming pipeline. A missing ID returns
// ("", false) rather than an error: generation treats unknown references as
// absent name fragments and never aborts a batch over one bad ID.

func (r *VocabularyRepository) SizeName(id uuid.UUID) (string, bool) {
	var size models.Size
	if err := r.db.Where("id = ?", id).First(&size).Error; err != nil {
		return "", false
	}
	return size.Name, true
}

func (r *VocabularyRepository) ColorName(id uuid.UUID) (string, bool) {
	var color models.Color
	if err := r.db.Where("id = ?", id).First(&color).Error; err != nil {
		return "", false
	}
	return color.Name, true
}

func (r *VocabularyRepository) FitName(id uuid.UUID) (string, bool) {
	var fit models.Fit
	if err := r.db.Where("id = ?", id).First(&fit).Error; err != nil {
		return "", false
	}
	return fit.Name, true
}

func (r *VocabularyRepository) PatternName(id uuid.UUID) (string, bool) {
	var pattern models.Pattern
	if err := r.db.Where("id = ?", id).First(&pattern).Error; err != nil {
		return "", false
	}
	return pattern.Name, true
}

func (r *VocabularyRepository) MaterialName(id uuid.UUID) (string, bool) {
	var material models.Material
	if err := r.db.Where("id = ?", id).First(&material).Error; err != nil {
		return "", false
	}
	return material.Name, true
}

func (r *VocabularyRepository) GenderName(id uuid.UUID) (string, bool) {
	var gender models.Gender
	if err := r.db.Where("id = ?", id).First(&gender).Error; err != nil {
		return "", false
	}
	return gender.Name, true
}
