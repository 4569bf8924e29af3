package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"taxonomy-service/internal/events"
	"taxonomy-service/internal/generator"
	"taxonomy-service/internal/middleware"
	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

type SKUHandler struct {
	repo            *repository.SKURepository
	vocab           *repository.VocabularyRepository
	categories      *repository.CategoryRepository
	eventsPublisher *events.Publisher
	logger          *logrus.Logger
}

func NewSKUHandler(
	repo *repository.SKURepository,
	vocab *repository.VocabularyRepository,
	categories *repository.CategoryRepository,
	eventsPublisher *events.Publisher,
	logger *logrus.Logger,
) *SKUHandler {
	return &SKUHandler{
		repo:            repo,
		vocab:           vocab,
		categories:      categories,
		eventsPublisher: eventsPublisher,
		logger:          logger,
	}
}

// resolvedContext is the naming context with every ID resolved to its display
// name, ready for fragment joining and metadata snapshots.
type resolvedContext struct {
	fragments []string
	metadata  models.SKUMetadata
}

// resolveContext turns a naming context into base-name fragments in the fixed
// order (brand, line, model, style, pattern, material, fit, apparel) and the
// matching metadata snapshot. An ID that no longer resolves contributes an
// empty fragment; the ID is still captured in the metadata. Generation never
// aborts over a single dangling reference.
func (h *SKUHandler) resolveContext(ctx *models.SKUNamingContext) resolvedContext {
	meta := models.SKUMetadata{ModelName: ctx.ModelName}

	lookup := func(kind string, id *uuid.UUID, resolve func(uuid.UUID) (string, bool)) string {
		if id == nil {
			return ""
		}
		name, ok := resolve(*id)
		if !ok {
			h.logger.WithFields(logrus.Fields{
				"kind": kind,
				"id":   id.String(),
			}).Warn("Unresolvable reference in naming context, fragment omitted")
			return ""
		}
		return name
	}
	categoryName := func(id uuid.UUID) (string, bool) {
		category, err := h.categories.GetByID(id)
		if err != nil {
			return "", false
		}
		return category.Name, true
	}

	styleName := lookup("style", ctx.StyleID, categoryName)
	patternName := lookup("pattern", ctx.PatternID, h.vocab.PatternName)
	materialName := lookup("material", ctx.MaterialID, h.vocab.MaterialName)
	fitName := lookup("fit", ctx.FitID, h.vocab.FitName)
	apparelName := lookup("apparel", ctx.ApparelID, categoryName)
	genderName := lookup("gender", ctx.GenderID, h.vocab.GenderName)

	meta.StyleID = ctx.StyleID
	meta.PatternID = ctx.PatternID
	meta.MaterialID = ctx.MaterialID
	meta.FitID = ctx.FitID
	meta.ApparelID = ctx.ApparelID
	meta.GenderID = ctx.GenderID
	if styleName != "" {
		meta.StyleName = &styleName
	}
	if patternName != "" {
		meta.PatternName = &patternName
	}
	if materialName != "" {
		meta.MaterialName = &materialName
	}
	if fitName != "" {
		meta.FitName = &fitName
	}
	if apparelName != "" {
		meta.ApparelName = &apparelName
	}
	if genderName != "" {
		meta.GenderName = &genderName
	}

	lineName := ""
	if ctx.LineName != nil {
		lineName = *ctx.LineName
	}

	return resolvedContext{
		fragments: []string{
			ctx.BrandName,
			lineName,
			ctx.ModelName,
			styleName,
			patternName,
			materialName,
			fitName,
			apparelName,
		},
		metadata: meta,
	}
}

// resolveDimensions maps requested vocabulary IDs to named dimensions. An
// unknown ID keeps its place with an empty name so the combination count is
// unaffected; the name annotation is simply skipped.
func (h *SKUHandler) resolveDimensions(kind string, ids []uuid.UUID, resolve func(uuid.UUID) (string, bool)) []*generator.Dimension {
	dims := make([]*generator.Dimension, 0, len(ids))
	for _, id := range ids {
		name, ok := resolve(id)
		if !ok {
			h.logger.WithFields(logrus.Fields{
				"kind": kind,
				"id":   id.String(),
			}).Warn("Unresolvable variant dimension, annotation omitted")
		}
		dims = append(dims, &generator.Dimension{ID: id, Name: name})
	}
	return dims
}

// GenerateSKUs materializes one SKU per (color, size) combination
// @Summary Generate SKUs
// @Description Materialize SKU records for every color × size combination. Empty axes collapse to a single SKU.
// @Tags SKUs
// @Accept json
// @Produce json
// @Param request body models.GenerateSKUsRequest true "Generation request"
// @Success 201 {object} models.GenerateSKUsResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /skus/generate [post]
func (h *SKUHandler) GenerateSKUs(c *gin.Context) {
	var req models.GenerateSKUsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	resolved := h.resolveContext(&req.Context)
	baseName := generator.JoinFragments(resolved.fragments...)
	if baseName == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one naming fragment is required", "context")
		return
	}

	colors := h.resolveDimensions("color", req.ColorIDs, h.vocab.ColorName)
	sizes := h.resolveDimensions("size", req.SizeIDs, h.vocab.SizeName)
	combos := generator.Expand(colors, sizes)
	codes := generator.NewCodeSequence()

	skus := make([]*models.SKU, 0, len(combos))
	for _, combo := range combos {
		meta := resolved.metadata
		if combo.Color != nil {
			colorID := combo.Color.ID
			meta.ColorID = &colorID
			if combo.Color.Name != "" {
				colorName := combo.Color.Name
				meta.ColorName = &colorName
			}
		}
		if combo.Size != nil {
			sizeID := combo.Size.ID
			meta.SizeID = &sizeID
			if combo.Size.Name != "" {
				sizeName := combo.Size.Name
				meta.SizeName = &sizeName
			}
		}

		skus = append(skus, &models.SKU{
			ID:          uuid.New(),
			Code:        codes.Next(),
			Name:        generator.DecorateName(baseName, combo.Color, combo.Size),
			BrandID:     req.BrandID,
			LineID:      req.LineID,
			Collection:  req.Collection,
			Description: req.Description,
			CategoryID:  req.CategoryID,
			Metadata:    meta,
		})
	}

	result, err := h.repo.GenerateBatch(skus)
	if err != nil && result.Success == 0 {
		details := models.JSON{"failed": result.Errors}
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARTIAL_BATCH_FAILURE",
				Message: "No SKUs could be materialized",
				Details: &details,
			},
		})
		return
	}

	h.eventsPublisher.PublishSKUGenerated(req.BrandID, result.Success, middleware.GetUserID(c))

	response := models.GenerateSKUsResponse{
		Success:      true,
		Count:        result.Success,
		TotalCount:   result.Total,
		SuccessCount: result.Success,
		FailedCount:  result.Failed,
		Results:      assembleGenerateResults(skus, result),
	}

	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusOK
	}
	c.JSON(status, response)
}

// assembleGenerateResults reports one item per requested combination, in
// request order. Index always identifies the original combination, whether it
// succeeded or failed.
func assembleGenerateResults(requested []*models.SKU, batch *repository.GenerateBatchResult) []models.GenerateResultItem {
	failures := make(map[int]repository.GenerateBatchError, len(batch.Errors))
	for _, failure := range batch.Errors {
		failures[failure.Index] = failure
	}

	results := make([]models.GenerateResultItem, 0, len(requested))
	created := 0
	for i, sku := range requested {
		if failure, ok := failures[i]; ok {
			results = append(results, models.GenerateResultItem{
				Index:   i,
				ColorID: failure.ColorID,
				SizeID:  failure.SizeID,
				Success: false,
				Error: &models.Error{
					Code:    failure.Code,
					Message: failure.Message,
				},
			})
			continue
		}
		// Created preserves request order with failed combinations skipped
		var persisted *models.SKU
		if created < len(batch.Created) {
			persisted = batch.Created[created]
			created++
		}
		results = append(results, models.GenerateResultItem{
			Index:   i,
			ColorID: sku.Metadata.ColorID,
			SizeID:  sku.Metadata.SizeID,
			Success: true,
			SKU:     persisted,
		})
	}
	return results
}

// UpdateSKU re-runs the naming pipeline for one existing SKU. The SKU's own
// (color, size) pair from its metadata is the only combination touched.
// @Summary Update SKU
// @Tags SKUs
// @Accept json
// @Produce json
// @Param id path string true "SKU ID"
// @Param request body models.UpdateSKURequest true "Update request"
// @Success 200 {object} models.SKUResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /skus/{id} [put]
func (h *SKUHandler) UpdateSKU(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid SKU ID", "id")
		return
	}

	var req models.UpdateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error(), "")
		return
	}

	sku, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get SKU", "")
		return
	}

	resolved := h.resolveContext(&req.Context)
	baseName := generator.JoinFragments(resolved.fragments...)
	if baseName == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one naming fragment is required", "context")
		return
	}

	// The stored pair is authoritative; fresh vocabulary names win when the
	// reference still resolves, the snapshot name otherwise.
	color := dimensionFromSnapshot(sku.Metadata.ColorID, sku.Metadata.ColorName, h.vocab.ColorName)
	size := dimensionFromSnapshot(sku.Metadata.SizeID, sku.Metadata.SizeName, h.vocab.SizeName)

	meta := resolved.metadata
	meta.ColorID = sku.Metadata.ColorID
	meta.SizeID = sku.Metadata.SizeID
	if color != nil && color.Name != "" {
		colorName := color.Name
		meta.ColorName = &colorName
	}
	if size != nil && size.Name != "" {
		sizeName := size.Name
		meta.SizeName = &sizeName
	}
	meta.Extra = sku.Metadata.Extra

	sku.Name = generator.DecorateName(baseName, color, size)
	sku.Metadata = meta
	if req.Collection != nil {
		sku.Collection = req.Collection
	}
	if req.Description != nil {
		sku.Description = req.Description
	}
	if req.Images != nil {
		sku.Images = req.Images
	}
	if req.Videos != nil {
		sku.Videos = req.Videos
	}
	if req.Materials != nil {
		sku.Materials = req.Materials
	}

	if err := h.repo.Update(sku); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update SKU", "")
		return
	}
	c.JSON(http.StatusOK, models.SKUResponse{Success: true, Data: sku})
}

func dimensionFromSnapshot(id *uuid.UUID, snapshotName *string, resolve func(uuid.UUID) (string, bool)) *generator.Dimension {
	if id == nil {
		return nil
	}
	name, ok := resolve(*id)
	if !ok && snapshotName != nil {
		name = *snapshotName
	}
	return &generator.Dimension{ID: *id, Name: name}
}

// DeleteSKU moves an active SKU to the trash
// @Summary Trash SKU
// @Tags SKUs
// @Produce json
// @Param id path string true "SKU ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /skus/{id} [delete]
func (h *SKUHandler) DeleteSKU(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid SKU ID", "id")
		return
	}
	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found", "id")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete SKU", "")
		return
	}

	h.eventsPublisher.PublishSKUTrashed(id.String(), middleware.GetUserID(c))

	message := "SKU moved to trash"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// RestoreSKU restores a trashed SKU to active
// @Summary Restore SKU
// @Tags SKUs
// @Produce json
// @Param id path string true "SKU ID"
// @Success 200 {object} models.SKUResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /skus/{id}/restore [post]
func (h *SKUHandler) RestoreSKU(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid SKU ID", "id")
		return
	}
	sku, err := h.repo.Restore(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSKUNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found", "id")
		case errors.Is(err, repository.ErrSKUNotTrashed):
			respondError(c, http.StatusConflict, "CONFLICT", "SKU is not in the trash", "id")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to restore SKU", "")
		}
		return
	}

	h.eventsPublisher.PublishSKURestored(id.String(), middleware.GetUserID(c))

	c.JSON(http.StatusOK, models.SKUResponse{Success: true, Data: sku})
}

// PermanentDeleteSKU purges a trashed SKU. Purging an active SKU is a
// state-transition error.
// @Summary Permanently delete SKU
// @Tags SKUs
// @Produce json
// @Param id path string true "SKU ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /skus/{id}/permanent [delete]
func (h *SKUHandler) PermanentDeleteSKU(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid SKU ID", "id")
		return
	}
	if err := h.repo.PermanentDelete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrSKUNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "SKU not found", "id")
		case errors.Is(err, repository.ErrSKUNotTrashed):
			respondError(c, http.StatusConflict, "CONFLICT", "SKU must be trashed before permanent deletion", "id")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to permanently delete SKU", "")
		}
		return
	}

	h.eventsPublisher.PublishSKUPurged(id.String(), middleware.GetUserID(c))

	message := "SKU permanently deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

func filtersFromQuery(c *gin.Context) *models.SKUFilters {
	filters := &models.SKUFilters{Page: 1, Limit: 20}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	if brandID := c.Query("brandId"); brandID != "" {
		filters.BrandID = &brandID
	}
	if page := c.Query("page"); page != "" {
		fmt.Sscanf(page, "%d", &filters.Page)
	}
	if limit := c.Query("limit"); limit != "" {
		fmt.Sscanf(limit, "%d", &filters.Limit)
	}
	return filters
}

func (h *SKUHandler) listSKUs(c *gin.Context, trashed bool) {
	filters := filtersFromQuery(c)

	var skus []models.SKU
	var total int64
	var err error
	if trashed {
		skus, total, err = h.repo.ListTrashed(filters)
	} else {
		skus, total, err = h.repo.ListActive(filters)
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve SKUs", "")
		return
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))
	c.JSON(http.StatusOK, models.SKUListResponse{
		Success: true,
		Data:    skus,
		Pagination: &models.PaginationInfo{
			Page:        filters.Page,
			Limit:       filters.Limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     filters.Page < totalPages,
			HasPrevious: filters.Page > 1,
		},
	})
}

// ListActiveSKUs returns active SKUs with search and brand filters
// @Summary List active SKUs
// @Tags SKUs
// @Produce json
// @Param search query string false "Name or code search"
// @Param brandId query string false "Brand filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.SKUListResponse
// @Router /skus [get]
func (h *SKUHandler) ListActiveSKUs(c *gin.Context) {
	h.listSKUs(c, false)
}

// ListTrashedSKUs returns trashed SKUs with the same filters
// @Summary List trashed SKUs
// @Tags SKUs
// @Produce json
// @Param search query string false "Name or code search"
// @Param brandId query string false "Brand filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.SKUListResponse
// @Router /skus/trash [get]
func (h *SKUHandler) ListTrashedSKUs(c *gin.Context) {
	h.listSKUs(c, true)
}

// ExportSKUs streams an XLSX workbook of the filtered active SKUs
// @Summary Export SKUs
// @Tags SKUs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Name or code search"
// @Param brandId query string false "Brand filter"
// @Success 200 {file} binary
// @Router /skus/export [post]
func (h *SKUHandler) ExportSKUs(c *gin.Context) {
	filters := filtersFromQuery(c)
	filters.Limit = 100

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "SKUs"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := []string{"Code", "Name", "Brand ID", "Color", "Size", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	// Page until exhaustion; the repository clamps the page size itself
	row := 2
	for page := 1; ; page++ {
		filters.Page = page
		skus, _, err := h.repo.ListActive(filters)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve SKUs", "")
			return
		}
		if len(skus) == 0 {
			break
		}
		for _, sku := range skus {
			colorName := ""
			if sku.Metadata.ColorName != nil {
				colorName = *sku.Metadata.ColorName
			}
			sizeName := ""
			if sku.Metadata.SizeName != nil {
				sizeName = *sku.Metadata.SizeName
			}
			values := []interface{}{
				sku.Code,
				sku.Name,
				sku.BrandID,
				colorName,
				sizeName,
				sku.CreatedAt.Format(time.RFC3339),
			}
			for i, value := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheetName, cell, value)
			}
			row++
		}
	}

	filename := fmt.Sprintf("skus-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to stream SKU export")
	}
}
