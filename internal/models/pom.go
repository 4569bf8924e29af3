package models

import (
	"time"

	"github.com/google/uuid"
)

// POMCategory groups measurement definitions (e.g. "Tops", "Bottoms").
// Independent of the apparel/style taxonomy.
type POMCategory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	SortOrder int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`

	Definitions []POMDefinition `json:"definitions,omitempty" gorm:"foreignKey:POMCategoryID"`
}

// POMDefinition is a single point-of-measurement: a named garment
// measurement location with a short code.
type POMDefinition struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Code              string    `json:"code" gorm:"not null;uniqueIndex"`
	Name              string    `json:"name" gorm:"not null"`
	Description       *string   `json:"description,omitempty"`
	POMCategoryID     uuid.UUID `json:"pomCategoryId" gorm:"type:uuid;not null;index"`
	IsHalfMeasurement bool      `json:"isHalfMeasurement" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ApparelPOMLink maps an apparel category to a measurement definition with
// ordering and a required flag. The set for an apparel category is always
// replaced wholesale, never patched.
type ApparelPOMLink struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ApparelCategoryID uuid.UUID `json:"apparelCategoryId" gorm:"type:uuid;not null;uniqueIndex:idx_apparel_pom"`
	POMID             uuid.UUID `json:"pomId" gorm:"type:uuid;not null;uniqueIndex:idx_apparel_pom"`
	IsRequired        bool      `json:"isRequired" gorm:"not null;default:false"`
	SortOrder         int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"createdAt"`

	Definition *POMDefinition `json:"definition,omitempty" gorm:"foreignKey:POMID"`
}

// CreatePOMCategoryRequest represents a request to create a POM group
type CreatePOMCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// CreatePOMDefinitionRequest represents a request to create a measurement definition
type CreatePOMDefinitionRequest struct {
	Code              string    `json:"code" binding:"required"`
	Name              string    `json:"name" binding:"required"`
	Description       *string   `json:"description,omitempty"`
	POMCategoryID     uuid.UUID `json:"pomCategoryId" binding:"required"`
	IsHalfMeasurement *bool     `json:"isHalfMeasurement,omitempty"`
}

// POMLinkItem is one entry of a full desired link set
type POMLinkItem struct {
	POMID      uuid.UUID `json:"pomId" binding:"required"`
	IsRequired bool      `json:"isRequired"`
	SortOrder  int       `json:"sortOrder"`
}

// SetApparelPOMsRequest replaces the entire mapping set for one apparel
// category. Callers must always submit the full desired set.
type SetApparelPOMsRequest struct {
	Links []POMLinkItem `json:"links" binding:"dive"`
}

// POMCategoryListResponse represents POM groups with their definitions
type POMCategoryListResponse struct {
	Success bool          `json:"success"`
	Data    []POMCategory `json:"data"`
}

// ApparelPOMListResponse represents the ordered links for one apparel category
type ApparelPOMListResponse struct {
	Success bool             `json:"success"`
	Data    []ApparelPOMLink `json:"data"`
}

// TableName returns the table name for the POMCategory model
func (POMCategory) TableName() string {
	return "pom_categories"
}

// TableName returns the table name for the POMDefinition model
func (POMDefinition) TableName() string {
	return "pom_definitions"
}

// TableName returns the table name for the ApparelPOMLink model
func (ApparelPOMLink) TableName() string {
	return "apparel_pom_links"
}
