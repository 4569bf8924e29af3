package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

type VocabularyHandler struct {
	repo *repository.VocabularyRepository
}

func NewVocabularyHandler(repo *repository.VocabularyRepository) *VocabularyHandler {
	return &VocabularyHandler{repo: repo}
}

// ListSizes returns the size vocabulary
// @Summary List sizes
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /sizes [get]
func (h *VocabularyHandler) ListSizes(c *gin.Context) {
	sizes, err := h.repo.ListSizes()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve sizes", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: sizes})
}

// CreateSize adds a size entry
// @Summary Create size
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param size body models.CreateVocabularyEntryRequest true "Size"
// @Success 201 {object} models.SuccessResponse
// @Router /sizes [post]
func (h *VocabularyHandler) CreateSize(c *gin.Context) {
	var req models.CreateVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	size := models.Size{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		size.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreateSize(&size); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create size", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: size})
}

// ListColors returns the color vocabulary
// @Summary List colors
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /colors [get]
func (h *VocabularyHandler) ListColors(c *gin.Context) {
	colors, err := h.repo.ListColors()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve colors", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: colors})
}

// CreateColor adds a color entry with its display hex code
// @Summary Create color
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param color body models.CreateColorRequest true "Color"
// @Success 201 {object} models.SuccessResponse
// @Router /colors [post]
func (h *VocabularyHandler) CreateColor(c *gin.Context) {
	var req models.CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	color := models.Color{ID: uuid.New(), Name: req.Name, Hex: req.Hex}
	if req.SortOrder != nil {
		color.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreateColor(&color); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create color", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: color})
}

// ListFits returns the fit vocabulary
// @Summary List fits
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /fits [get]
func (h *VocabularyHandler) ListFits(c *gin.Context) {
	fits, err := h.repo.ListFits()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve fits", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: fits})
}

// CreateFit adds a fit entry
// @Summary Create fit
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param fit body models.CreateVocabularyEntryRequest true "Fit"
// @Success 201 {object} models.SuccessResponse
// @Router /fits [post]
func (h *VocabularyHandler) CreateFit(c *gin.Context) {
	var req models.CreateVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	fit := models.Fit{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		fit.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreateFit(&fit); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create fit", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: fit})
}

// ListPatterns returns the pattern vocabulary
// @Summary List patterns
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /patterns [get]
func (h *VocabularyHandler) ListPatterns(c *gin.Context) {
	patterns, err := h.repo.ListPatterns()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve patterns", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: patterns})
}

// CreatePattern adds a pattern entry
// @Summary Create pattern
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param pattern body models.CreateVocabularyEntryRequest true "Pattern"
// @Success 201 {object} models.SuccessResponse
// @Router /patterns [post]
func (h *VocabularyHandler) CreatePattern(c *gin.Context) {
	var req models.CreateVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	pattern := models.Pattern{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		pattern.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreatePattern(&pattern); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create pattern", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: pattern})
}

// ListMaterials returns the material vocabulary
// @Summary List materials
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /materials [get]
func (h *VocabularyHandler) ListMaterials(c *gin.Context) {
	materials, err := h.repo.ListMaterials()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve materials", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: materials})
}

// CreateMaterial adds a material entry
// @Summary Create material
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param material body models.CreateVocabularyEntryRequest true "Material"
// @Success 201 {object} models.SuccessResponse
// @Router /materials [post]
func (h *VocabularyHandler) CreateMaterial(c *gin.Context) {
	var req models.CreateVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	material := models.Material{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		material.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreateMaterial(&material); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create material", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: material})
}

// ListGenders returns the gender vocabulary
// @Summary List genders
// @Tags Vocabularies
// @Produce json
// @Success 200 {object} models.VocabularyListResponse
// @Router /genders [get]
func (h *VocabularyHandler) ListGenders(c *gin.Context) {
	genders, err := h.repo.ListGenders()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve genders", "")
		return
	}
	c.JSON(http.StatusOK, models.VocabularyListResponse{Success: true, Data: genders})
}

// CreateGender adds a gender entry
// @Summary Create gender
// @Tags Vocabularies
// @Accept json
// @Produce json
// @Param gender body models.CreateVocabularyEntryRequest true "Gender"
// @Success 201 {object} models.SuccessResponse
// @Router /genders [post]
func (h *VocabularyHandler) CreateGender(c *gin.Context) {
	var req models.CreateVocabularyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	gender := models.Gender{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		gender.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreateGender(&gender); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create gender", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: gender})
}
