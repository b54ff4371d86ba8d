package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/app/services"
	"github.com/schoolbill/backend/internal/middleware"
)

// GenerationController handles bulk voucher generation endpoints
type GenerationController struct {
	generationService *services.GenerationService
}

// NewGenerationController creates a new GenerationController
func NewGenerationController(generationService *services.GenerationService) *GenerationController {
	return &GenerationController{generationService: generationService}
}

// GenerateMonthly creates vouchers for every eligible student in a period
// @Summary Generate monthly vouchers
// @Description Creates one voucher per eligible student from the monthly fee structures of the given academic year. Students that already have a voucher for the period are skipped, so reruns are safe.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateMonthlyRequest true "Generation parameters"
// @Success 201 {object} dto.APIResponse{data=dto.GenerationResponse} "Vouchers generated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid generation parameters"
// @Failure 404 {object} dto.ErrorResponse "No eligible students found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent generation conflict"
// @Failure 422 {object} dto.ErrorResponse "Class does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/vouchers/generate-monthly [post]
func (c *GenerationController) GenerateMonthly(ctx *gin.Context) {
	var req dto.GenerateMonthlyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid generation parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.generationService.GenerateMonthly(ctx, req.AcademicYear, req.Month, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
