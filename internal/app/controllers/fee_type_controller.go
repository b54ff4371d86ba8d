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

// FeeTypeController handles fee type catalog endpoints
type FeeTypeController struct {
	feeTypeService *services.FeeTypeService
}

// NewFeeTypeController creates a new FeeTypeController
func NewFeeTypeController(feeTypeService *services.FeeTypeService) *FeeTypeController {
	return &FeeTypeController{feeTypeService: feeTypeService}
}

// CreateFeeType handles fee type creation
// @Summary Create a new fee type
// @Description Creates a named fee category such as tuition or sports
// @Tags fee-types
// @Accept json
// @Produce json
// @Param request body dto.CreateFeeTypeRequest true "Fee type information"
// @Success 201 {object} dto.APIResponse{data=dto.FeeTypeResponse} "Fee type created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Fee type name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-types [post]
func (c *FeeTypeController) CreateFeeType(ctx *gin.Context) {
	var req dto.CreateFeeTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee type data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feeType := models.FeeType{Name: req.Name}
	if err := c.feeTypeService.CreateFeeType(ctx, &feeType); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromFeeType(&feeType),
		Timestamp: time.Now(),
	})
}

// GetFeeTypeByID retrieves a fee type by ID
// @Summary Get fee type by ID
// @Tags fee-types
// @Accept json
// @Produce json
// @Param id path int true "Fee type ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeTypeResponse} "Fee type retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid fee type ID"
// @Failure 404 {object} dto.ErrorResponse "Fee type not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-types/{id} [get]
func (c *FeeTypeController) GetFeeTypeByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee type ID")
		errorDetail = errorDetail.WithDetails("Fee type ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feeType, err := c.feeTypeService.GetFeeTypeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeeType(feeType),
		Timestamp: time.Now(),
	})
}

// GetAllFeeTypes retrieves all fee types
// @Summary List fee types
// @Tags fee-types
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FeeTypeResponse} "Fee types retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-types [get]
func (c *FeeTypeController) GetAllFeeTypes(ctx *gin.Context) {
	feeTypes, err := c.feeTypeService.GetAllFeeTypes(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FeeTypeResponse, 0, len(feeTypes))
	for _, feeType := range feeTypes {
		responses = append(responses, dto.FromFeeType(feeType))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// UpdateFeeType renames an existing fee type
// @Summary Update a fee type
// @Tags fee-types
// @Accept json
// @Produce json
// @Param id path int true "Fee type ID"
// @Param request body dto.UpdateFeeTypeRequest true "Updated fee type information"
// @Success 200 {object} dto.APIResponse{data=dto.FeeTypeResponse} "Fee type updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Fee type not found"
// @Failure 409 {object} dto.ErrorResponse "Fee type name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-types/{id} [put]
func (c *FeeTypeController) UpdateFeeType(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee type ID")
		errorDetail = errorDetail.WithDetails("Fee type ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateFeeTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee type data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feeType := models.FeeType{ID: id, Name: req.Name}
	if err := c.feeTypeService.UpdateFeeType(ctx, &feeType); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromFeeType(&feeType),
		Timestamp: time.Now(),
	})
}

// DeleteFeeType deletes a fee type
// @Summary Delete a fee type
// @Description Deletes a fee type; rejected while fee structures or voucher line items still reference it
// @Tags fee-types
// @Accept json
// @Produce json
// @Param id path int true "Fee type ID"
// @Success 204 "Fee type deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid fee type ID"
// @Failure 404 {object} dto.ErrorResponse "Fee type not found"
// @Failure 409 {object} dto.ErrorResponse "Fee type is still referenced"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-types/{id} [delete]
func (c *FeeTypeController) DeleteFeeType(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee type ID")
		errorDetail = errorDetail.WithDetails("Fee type ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.feeTypeService.DeleteFeeType(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
