package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents an apparel (root) or style (child) category.
// The hierarchy is at most two levels deep: apparel categories have a nil
// ParentID, style categories point at an apparel category and never have
// children of their own.
type Category struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Name      string     `json:"name" gorm:"not null"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" gorm:"type:uuid;index"`
	SortOrder int        `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// AttributeType declares a named attribute slug that may be attached to a
// category. The slug is the join key and is never silently overwritten.
type AttributeType struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryAttributeValue is one cell of the sparse category-attribute matrix,
// unique on (category, slug). Values for multi-valued slugs arrive
// JSON-encoded by the caller and are stored as opaque text.
type CategoryAttributeValue struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CategoryID    uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;uniqueIndex:idx_category_attribute"`
	AttributeSlug string    `json:"attributeSlug" gorm:"not null;uniqueIndex:idx_category_attribute"`
	Value         string    `json:"value" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Attribute slugs with JSON-encoded list values. Everything else is scalar.
const (
	AttrPossibleSizes = "possible-sizes"
	AttrPossibleFits  = "possible-fits"
)

// RequiredAttributeType is one entry of the declarative boot-time schema.
type RequiredAttributeType struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// DefaultAttributeTypes is the fixed set ensured at startup. The ensure
// operation only ever creates missing slugs.
var DefaultAttributeTypes = []RequiredAttributeType{
	{Slug: "subcategory-1", Name: "Subcategory 1"},
	{Slug: "height-cm", Name: "Height (cm)"},
	{Slug: "weight-g", Name: "Weight (g)"},
	{Slug: "package-length-cm", Name: "Package Length (cm)"},
	{Slug: "package-width-cm", Name: "Package Width (cm)"},
	{Slug: "package-height-cm", Name: "Package Height (cm)"},
	{Slug: "google-category", Name: "Google Shopping Category"},
	{Slug: AttrPossibleSizes, Name: "Possible Sizes"},
	{Slug: AttrPossibleFits, Name: "Possible Fits"},
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name      string     `json:"name" binding:"required"`
	ParentID  *uuid.UUID `json:"parentId,omitempty"`
	SortOrder *int       `json:"sortOrder,omitempty"`
}

// RenameCategoryRequest represents a request to rename a category
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// EnsureAttributeTypesRequest represents the idempotent ensure operation input
type EnsureAttributeTypesRequest struct {
	Required []RequiredAttributeType `json:"required" binding:"required,min=1,dive"`
}

// SetCategoryAttributeRequest represents a single-cell matrix upsert
type SetCategoryAttributeRequest struct {
	Value string `json:"value" binding:"required"`
}

// CategoryResponse represents a single category response
type CategoryResponse struct {
	Success bool      `json:"success"`
	Data    *Category `json:"data"`
	Message *string   `json:"message,omitempty"`
}

// CategoryListResponse represents a list of categories response
type CategoryListResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

// AttributeTypeListResponse represents the attribute type registry contents
type AttributeTypeListResponse struct {
	Success bool            `json:"success"`
	Data    []AttributeType `json:"data"`
}

// CategoryAttributeListResponse returns the full sparse matrix for
// client-side filtering by category.
type CategoryAttributeListResponse struct {
	Success bool                     `json:"success"`
	Data    []CategoryAttributeValue `json:"data"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the AttributeType model
func (AttributeType) TableName() string {
	return "attribute_types"
}

// TableName returns the table name for the CategoryAttributeValue model
func (CategoryAttributeValue) TableName() string {
	return "category_attribute_values"
}
