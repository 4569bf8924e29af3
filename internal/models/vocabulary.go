package models

import (
	"time"

	"github.com/google/uuid"
)

// Reference vocabularies are flat enumerations referenced by ID from the
// category-attribute matrix and from SKU metadata. No hierarchy.

// Size represents a size vocabulary entry
type Size struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Color represents a color vocabulary entry with a display hex code
type Color struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Hex       string    `json:"hex" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fit represents a fit vocabulary entry
type Fit struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pattern represents a pattern vocabulary entry
type Pattern struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Material represents a material vocabulary entry
type Material struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// Gender represents a gender vocabulary entry
type Gender struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateVocabularyEntryRequest covers the single-name vocabularies
type CreateVocabularyEntryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// CreateColorRequest adds the hex code colors carry
type CreateColorRequest struct {
	Name      string `json:"name" binding:"required"`
	Hex       string `json:"hex" binding:"required"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// VocabularyListResponse represents any vocabulary listing
type VocabularyListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func (Size) TableName() string     { return "sizes" }
func (Color) TableName() string    { return "colors" }
func (Fit) TableName() string      { return "fits" }
func (Pattern) TableName() string  { return "patterns" }
func (Material) TableName() string { return "materials" }
func (Gender) TableName() string   { return "genders" }
