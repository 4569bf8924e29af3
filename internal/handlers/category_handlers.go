package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxonomy-service/internal/events"
	"taxonomy-service/internal/middleware"
	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

type CategoryHandler struct {
	repo            *repository.CategoryRepository
	eventsPublisher *events.Publisher
}

func NewCategoryHandler(repo *repository.CategoryRepository, eventsPublisher *events.Publisher) *CategoryHandler {
	return &CategoryHandler{
		repo:            repo,
		eventsPublisher: eventsPublisher,
	}
}

// ListCategories returns the full taxonomy
// @Summary List categories
// @Description Get all apparel and style categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.CategoryListResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.GetAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve categories", "")
		return
	}
	c.JSON(http.StatusOK, models.CategoryListResponse{Success: true, Data: categories})
}

// GetCategoryChildren returns the style categories under an apparel category
// @Summary List child categories
// @Tags Categories
// @Produce json
// @Param id path string true "Apparel category ID"
// @Success 200 {object} models.CategoryListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/children [get]
func (h *CategoryHandler) GetCategoryChildren(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}
	children, err := h.repo.GetChildren(id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve child categories", "")
		return
	}
	c.JSON(http.StatusOK, models.CategoryListResponse{Success: true, Data: children})
}

// CreateCategory creates an apparel or style category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	category := models.Category{
		ID:       uuid.New(),
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := h.repo.Create(&category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Parent category not found", "parentId")
		case errors.Is(err, repository.ErrCategoryDepthExceeded):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Parent must be a root apparel category", "parentId")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category", "")
		}
		return
	}

	h.eventsPublisher.PublishCategoryCreated(category.ID.String(), category.Name, middleware.GetUserID(c))

	c.JSON(http.StatusCreated, models.CategoryResponse{Success: true, Data: &category})
}

// RenameCategory renames a category
// @Summary Rename category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.RenameCategoryRequest true "New name"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}

	var req models.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	category, err := h.repo.Rename(id, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rename category", "")
		return
	}

	h.eventsPublisher.PublishCategoryRenamed(category.ID.String(), category.Name, middleware.GetUserID(c))

	c.JSON(http.StatusOK, models.CategoryResponse{Success: true, Data: category})
}

// DeleteCategory deletes a category and cascades to its children and their
// attribute rows. Irreversible.
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete category", "")
		return
	}

	h.eventsPublisher.PublishCategoryDeleted(id.String(), middleware.GetUserID(c))

	message := "Category and its children deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// EnsureAttributeTypes creates any missing required attribute types
// @Summary Ensure attribute types
// @Description Idempotently create required attribute types; existing slugs are never modified
// @Tags Attributes
// @Accept json
// @Produce json
// @Param required body models.EnsureAttributeTypesRequest true "Required types"
// @Success 200 {object} models.SuccessResponse
// @Router /attribute-types/ensure [post]
func (h *CategoryHandler) EnsureAttributeTypes(c *gin.Context) {
	var req models.EnsureAttributeTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	created, err := h.repo.EnsureAttributeTypes(req.Required)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to ensure attribute types", "")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"created": created},
	})
}

// CreateAttributeType explicitly creates an attribute type
// @Summary Create attribute type
// @Tags Attributes
// @Accept json
// @Produce json
// @Param type body models.RequiredAttributeType true "Attribute type"
// @Success 201 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /attribute-types [post]
func (h *CategoryHandler) CreateAttributeType(c *gin.Context) {
	var req models.RequiredAttributeType
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	attrType := models.AttributeType{
		ID:   uuid.New(),
		Slug: req.Slug,
		Name: req.Name,
	}
	if err := h.repo.CreateAttributeType(&attrType); err != nil {
		if errors.Is(err, repository.ErrAttributeTypeExists) {
			respondError(c, http.StatusConflict, "CONFLICT", "Attribute type with this slug already exists", "slug")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create attribute type", "")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: attrType})
}

// ListAttributeTypes returns the attribute type registry
// @Summary List attribute types
// @Tags Attributes
// @Produce json
// @Success 200 {object} models.AttributeTypeListResponse
// @Router /attribute-types [get]
func (h *CategoryHandler) ListAttributeTypes(c *gin.Context) {
	types, err := h.repo.GetAttributeTypes()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve attribute types", "")
		return
	}
	c.JSON(http.StatusOK, models.AttributeTypeListResponse{Success: true, Data: types})
}

// SetCategoryAttribute upserts one cell of the category-attribute matrix
// @Summary Set category attribute
// @Description Upsert a single (category, slug) value. Multi-valued slugs must be JSON-encoded by the caller.
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param slug path string true "Attribute slug"
// @Param value body models.SetCategoryAttributeRequest true "Value"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/attributes/{slug} [put]
func (h *CategoryHandler) SetCategoryAttribute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}
	slug := c.Param("slug")

	var req models.SetCategoryAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	// Multi-valued slugs must decode as ordered ID lists before they are
	// accepted; storing a malformed list would break every later read.
	if slug == models.AttrPossibleSizes || slug == models.AttrPossibleFits {
		if _, err := models.DecodeIDList(req.Value); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Value must be a JSON-encoded list of IDs", "value")
			return
		}
	}

	row, err := h.repo.SetAttribute(id, slug, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
		case errors.Is(err, repository.ErrAttributeTypeNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Attribute type not found", "slug")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to set attribute", "")
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: row})
}

// GetAllCategoryAttributes returns the full sparse matrix
// @Summary Get all category attributes
// @Tags Attributes
// @Produce json
// @Success 200 {object} models.CategoryAttributeListResponse
// @Router /category-attributes [get]
func (h *CategoryHandler) GetAllCategoryAttributes(c *gin.Context) {
	rows, err := h.repo.GetAllAttributes()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve attributes", "")
		return
	}
	c.JSON(http.StatusOK, models.CategoryAttributeListResponse{Success: true, Data: rows})
}
