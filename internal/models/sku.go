package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SKUMetadata is the attribute snapshot taken when a SKU is materialized.
// Known attributes are explicit typed fields; anything else round-trips
// through Extra so future keys survive a read-modify-write cycle.
type SKUMetadata struct {
	ModelName    string     `json:"modelName,omitempty"`
	GenderID     *uuid.UUID `json:"genderId,omitempty"`
	GenderName   *string    `json:"genderName,omitempty"`
	ApparelID    *uuid.UUID `json:"apparelId,omitempty"`
	ApparelName  *string    `json:"apparelName,omitempty"`
	StyleID      *uuid.UUID `json:"styleId,omitempty"`
	StyleName    *string    `json:"styleName,omitempty"`
	PatternID    *uuid.UUID `json:"patternId,omitempty"`
	PatternName  *string    `json:"patternName,omitempty"`
	MaterialID   *uuid.UUID `json:"materialId,omitempty"`
	MaterialName *string    `json:"materialName,omitempty"`
	FitID        *uuid.UUID `json:"fitId,omitempty"`
	FitName      *string    `json:"fitName,omitempty"`
	SizeID       *uuid.UUID `json:"sizeId,omitempty"`
	SizeName     *string    `json:"sizeName,omitempty"`
	ColorID      *uuid.UUID `json:"colorId,omitempty"`
	ColorName    *string    `json:"colorName,omitempty"`

	// Extra holds unknown keys verbatim. Not addressable by typed code.
	Extra map[string]json.RawMessage `json:"-"`
}

// skuMetadataAlias avoids MarshalJSON/UnmarshalJSON recursion.
type skuMetadataAlias SKUMetadata

var skuMetadataKnownKeys = []string{
	"modelName",
	"genderId", "genderName",
	"apparelId", "apparelName",
	"styleId", "styleName",
	"patternId", "patternName",
	"materialId", "materialName",
	"fitId", "fitName",
	"sizeId", "sizeName",
	"colorId", "colorName",
}

// MarshalJSON emits the typed fields plus any Extra keys. Typed fields win
// on collision.
func (m SKUMetadata) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(skuMetadataAlias(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return data, nil
	}
	merged := make(map[string]json.RawMessage)
	for k, v := range m.Extra {
		merged[k] = v
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON fills the typed fields and captures unknown keys into Extra.
func (m *SKUMetadata) UnmarshalJSON(data []byte) error {
	var alias skuMetadataAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range skuMetadataKnownKeys {
		delete(raw, key)
	}
	*m = SKUMetadata(alias)
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

func (m SKUMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *SKUMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = SKUMetadata{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, m)
}

// SKU is one concrete sellable variant: exactly one color/size combination
// (or nil/nil when neither dimension was selected). Never a multi-variant
// container.
type SKU struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	Code        string          `json:"code" gorm:"not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"not null;index"`
	BrandID     string          `json:"brandId" gorm:"not null;index"`
	LineID      *string         `json:"lineId,omitempty"`
	Collection  *string         `json:"collection,omitempty"`
	Description *string         `json:"description,omitempty"`
	Images      *JSONArray      `json:"images,omitempty" gorm:"type:jsonb"`
	Videos      *JSONArray      `json:"videos,omitempty" gorm:"type:jsonb"`
	Materials   *JSONArray      `json:"materials,omitempty" gorm:"type:jsonb"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	Metadata    SKUMetadata     `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// SKUNamingContext carries the attribute selection the naming pipeline
// resolves into base-name fragments. Fragment order is fixed: brand/line,
// model, style, pattern, material, fit, apparel.
type SKUNamingContext struct {
	BrandName  string     `json:"brandName" binding:"required"`
	LineName   *string    `json:"lineName,omitempty"`
	ModelName  string     `json:"modelName" binding:"required"`
	GenderID   *uuid.UUID `json:"genderId,omitempty"`
	ApparelID  *uuid.UUID `json:"apparelId,omitempty"`
	StyleID    *uuid.UUID `json:"styleId,omitempty"`
	PatternID  *uuid.UUID `json:"patternId,omitempty"`
	MaterialID *uuid.UUID `json:"materialId,omitempty"`
	FitID      *uuid.UUID `json:"fitId,omitempty"`
}

// GenerateSKUsRequest materializes one SKU per (color, size) combination
type GenerateSKUsRequest struct {
	Context     SKUNamingContext `json:"context" binding:"required"`
	BrandID     string           `json:"brandId" binding:"required"`
	LineID      *string          `json:"lineId,omitempty"`
	Collection  *string          `json:"collection,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *uuid.UUID       `json:"categoryId,omitempty"`
	ColorIDs    []uuid.UUID      `json:"colorIds"`
	SizeIDs     []uuid.UUID      `json:"sizeIds"`
}

// UpdateSKURequest re-runs the naming pipeline for the single (color, size)
// pair already stored in the SKU's metadata.
type UpdateSKURequest struct {
	Context     SKUNamingContext `json:"context" binding:"required"`
	Collection  *string          `json:"collection,omitempty"`
	Description *string          `json:"description,omitempty"`
	Images      *JSONArray       `json:"images,omitempty"`
	Videos      *JSONArray       `json:"videos,omitempty"`
	Materials   *JSONArray       `json:"materials,omitempty"`
}

// SKUFilters represents listing filters shared by active and trash views
type SKUFilters struct {
	Search  *string `json:"search,omitempty"`
	BrandID *string `json:"brandId,omitempty"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
}

// GenerateResultItem reports the outcome for one (color, size) combination
type GenerateResultItem struct {
	Index   int        `json:"index"`
	ColorID *uuid.UUID `json:"colorId,omitempty"`
	SizeID  *uuid.UUID `json:"sizeId,omitempty"`
	Success bool       `json:"success"`
	SKU     *SKU       `json:"sku,omitempty"`
	Error   *Error     `json:"error,omitempty"`
}

// GenerateSKUsResponse represents batch generation output with explicit
// per-combination results
type GenerateSKUsResponse struct {
	Success      bool                 `json:"success"`
	Count        int                  `json:"count"`
	TotalCount   int                  `json:"totalCount"`
	SuccessCount int                  `json:"successCount"`
	FailedCount  int                  `json:"failedCount"`
	Results      []GenerateResultItem `json:"results"`
}

// SKUResponse represents a single SKU response
type SKUResponse struct {
	Success bool    `json:"success"`
	Data    *SKU    `json:"data"`
	Message *string `json:"message,omitempty"`
}

// SKUListResponse represents a SKU listing response
type SKUListResponse struct {
	Success    bool            `json:"success"`
	Data       []SKU           `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// TableName returns the table name for the SKU model
func (SKU) TableName() string {
	return "skus"
}
