package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/app/services"
	"github.com/schoolbill/backend/internal/middleware"
)

// FeeStructureController handles fee structure configuration endpoints
type FeeStructureController struct {
	feeStructureService *services.FeeStructureService
}

// NewFeeStructureController creates a new FeeStructureController
func NewFeeStructureController(feeStructureService *services.FeeStructureService) *FeeStructureController {
	return &FeeStructureController{feeStructureService: feeStructureService}
}

// CreateFeeStructure handles fee structure creation
// @Summary Create a new fee structure
// @Description Configures a fee obligation for a class and academic year
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param request body dto.CreateFeeStructureRequest true "Fee structure information"
// @Success 201 {object} dto.APIResponse{data=dto.FeeStructureResponse} "Fee structure created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Fee structure already exists"
// @Failure 422 {object} dto.ErrorResponse "Class or fee type does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-structures [post]
func (c *FeeStructureController) CreateFeeStructure(ctx *gin.Context) {
	var req dto.CreateFeeStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee structure data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	structure := models.FeeStructure{
		ClassID:      req.ClassID,
		FeeTypeID:    req.FeeTypeID,
		Amount:       req.Amount,
		Frequency:    models.Frequency(req.Frequency),
		AcademicYear: req.AcademicYear,
	}
	if err := c.feeStructureService.CreateFeeStructure(ctx, &structure); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromFeeStructure(&structure),
		Timestamp: time.Now(),
	})
}

// GetFeeStructureByID retrieves a fee structure by ID
// @Summary Get fee structure by ID
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param id path int true "Fee structure ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeStructureResponse} "Fee structure retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid fee structure ID"
// @Failure 404 {object} dto.ErrorResponse "Fee structure not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-structures/{id} [get]
func (c *FeeStructureController) GetFeeStructureByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee structure ID")
		errorDetail = errorDetail.WithDetails("Fee structure ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	structure, err := c.feeStructureService.GetFeeStructureByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeeStructure(structure),
		Timestamp: time.Now(),
	})
}

// GetAllFeeStructures retrieves fee structures with optional filters
// @Summary List fee structures
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param classId query int false "Filter by class ID"
// @Param academicYear query string false "Filter by academic year (YYYY-YYYY)"
// @Success 200 {object} dto.APIResponse{data=[]dto.FeeStructureResponse} "Fee structures retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-structures [get]
func (c *FeeStructureController) GetAllFeeStructures(ctx *gin.Context) {
	var classID *int64
	if classIDStr := ctx.Query("classId"); classIDStr != "" {
		id, err := strconv.ParseInt(classIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class ID")
			errorDetail = errorDetail.WithDetails("Class ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		classID = &id
	}

	var academicYear *string
	if yearStr := ctx.Query("academicYear"); yearStr != "" {
		academicYear = &yearStr
	}

	structures, err := c.feeStructureService.GetAllFeeStructures(ctx, classID, academicYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FeeStructureResponse, 0, len(structures))
	for _, structure := range structures {
		responses = append(responses, dto.FromFeeStructure(structure))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// UpdateFeeStructure updates an existing fee structure
// @Summary Update a fee structure
// @Description Updates a fee structure; already-generated vouchers are not altered
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param id path int true "Fee structure ID"
// @Param request body dto.UpdateFeeStructureRequest true "Updated fee structure information"
// @Success 200 {object} dto.APIResponse{data=dto.FeeStructureResponse} "Fee structure updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Fee structure not found"
// @Failure 409 {object} dto.ErrorResponse "Fee structure already exists"
// @Failure 422 {object} dto.ErrorResponse "Class or fee type does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-structures/{id} [put]
func (c *FeeStructureController) UpdateFeeStructure(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee structure ID")
		errorDetail = errorDetail.WithDetails("Fee structure ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateFeeStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee structure data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	structure := models.FeeStructure{
		ID:           id,
		ClassID:      req.ClassID,
		FeeTypeID:    req.FeeTypeID,
		Amount:       req.Amount,
		Frequency:    models.Frequency(req.Frequency),
		AcademicYear: req.AcademicYear,
	}
	if err := c.feeStructureService.UpdateFeeStructure(ctx, &structure); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeeStructure(&structure),
		Timestamp: time.Now(),
	})
}

// DeleteFeeStructure deletes a fee structure
// @Summary Delete a fee structure
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param id path int true "Fee structure ID"
// @Success 204 "Fee structure deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid fee structure ID"
// @Failure 404 {object} dto.ErrorResponse "Fee structure not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-structures/{id} [delete]
func (c *FeeStructureController) DeleteFeeStructure(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee structure ID")
		errorDetail = errorDetail.WithDetails("Fee structure ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.feeStructureService.DeleteFeeStructure(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
