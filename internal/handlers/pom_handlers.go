package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

type POMHandler struct {
	repo *repository.POMRepository
}

func NewPOMHandler(repo *repository.POMRepository) *POMHandler {
	return &POMHandler{repo: repo}
}

// CreatePOMCategory creates a measurement group
// @Summary Create POM category
// @Tags POM
// @Accept json
// @Produce json
// @Param category body models.CreatePOMCategoryRequest true "POM category"
// @Success 201 {object} models.SuccessResponse
// @Router /pom-categories [post]
func (h *POMHandler) CreatePOMCategory(c *gin.Context) {
	var req models.CreatePOMCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}
	category := models.POMCategory{ID: uuid.New(), Name: req.Name}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if err := h.repo.CreatePOMCategory(&category); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create POM category", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: category})
}

// ListPOMCategories returns all measurement groups with definitions
// @Summary List POM categories
// @Tags POM
// @Produce json
// @Success 200 {object} models.POMCategoryListResponse
// @Router /pom-categories [get]
func (h *POMHandler) ListPOMCategories(c *gin.Context) {
	categories, err := h.repo.ListPOMCategories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve POM categories", "")
		return
	}
	c.JSON(http.StatusOK, models.POMCategoryListResponse{Success: true, Data: categories})
}

// CreatePOMDefinition creates a measurement definition
// @Summary Create POM definition
// @Tags POM
// @Accept json
// @Produce json
// @Param definition body models.CreatePOMDefinitionRequest true "POM definition"
// @Success 201 {object} models.SuccessResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /pom-definitions [post]
func (h *POMHandler) CreatePOMDefinition(c *gin.Context) {
	var req models.CreatePOMDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	def := models.POMDefinition{
		ID:            uuid.New(),
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		POMCategoryID: req.POMCategoryID,
	}
	if req.IsHalfMeasurement != nil {
		def.IsHalfMeasurement = *req.IsHalfMeasurement
	}

	if err := h.repo.CreatePOMDefinition(&def); err != nil {
		if errors.Is(err, repository.ErrPOMCodeExists) {
			respondError(c, http.StatusConflict, "CONFLICT", "POM definition with this code already exists", "code")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create POM definition", "")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: def})
}

// ListPOMDefinitions returns all measurement definitions
// @Summary List POM definitions
// @Tags POM
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /pom-definitions [get]
func (h *POMHandler) ListPOMDefinitions(c *gin.Context) {
	defs, err := h.repo.ListPOMDefinitions()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve POM definitions", "")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: defs})
}

// GetApparelPOMs returns the linked definitions for an apparel category
// @Summary Get apparel POM links
// @Tags POM
// @Produce json
// @Param id path string true "Apparel category ID"
// @Success 200 {object} models.ApparelPOMListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/pom-links [get]
func (h *POMHandler) GetApparelPOMs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}
	links, err := h.repo.GetApparelPOMs(id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve POM links", "")
		return
	}
	c.JSON(http.StatusOK, models.ApparelPOMListResponse{Success: true, Data: links})
}

// SetApparelPOMs replaces the entire link set for an apparel category.
// Callers always submit the full desired set; this is not a patch.
// @Summary Set apparel POM links
// @Tags POM
// @Accept json
// @Produce json
// @Param id path string true "Apparel category ID"
// @Param links body models.SetApparelPOMsRequest true "Full desired link set"
// @Success 200 {object} models.ApparelPOMListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/pom-links [put]
func (h *POMHandler) SetApparelPOMs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category ID", "id")
		return
	}

	var req models.SetApparelPOMsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	links, err := h.repo.ReplaceApparelPOMs(id, req.Links)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found", "id")
		case errors.Is(err, repository.ErrPOMDefinitionNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "POM definition not found", "links")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to replace POM links", "")
		}
		return
	}
	c.JSON(http.StatusOK, models.ApparelPOMListResponse{Success: true, Data: links})
}
