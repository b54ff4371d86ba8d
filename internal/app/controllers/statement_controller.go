package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/app/services"
	"github.com/schoolbill/backend/internal/middleware"
)

// StatementController handles printable statement endpoints
type StatementController struct {
	statementService *services.StatementService
}

// NewStatementController creates a new StatementController
func NewStatementController(statementService *services.StatementService) *StatementController {
	return &StatementController{statementService: statementService}
}

// GetStatement builds a statement for a single voucher
// @Summary Get a voucher statement
// @Description Returns a read-only statement projection for one voucher with charges, total and balance
// @Tags statements
// @Accept json
// @Produce json
// @Param voucherId path int true "Voucher ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatementResponse} "Statement retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid voucher ID"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/statements/{voucherId} [get]
func (c *StatementController) GetStatement(ctx *gin.Context) {
	voucherID, err := strconv.ParseInt(ctx.Param("voucherId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid voucher ID")
		errorDetail = errorDetail.WithDetails("Voucher ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	statement, err := c.statementService.GetStatement(ctx, voucherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      statement,
		Timestamp: time.Now(),
	})
}

// ListStatements builds statements for every voucher in a period
// @Summary List statements for a period
// @Description Returns statements for all vouchers due in the given academic year and month, optionally filtered by class
// @Tags statements
// @Accept json
// @Produce json
// @Param classId query int false "Filter by class ID"
// @Param academicYear query string true "Academic year (YYYY-YYYY)"
// @Param month query int true "Month number (1-12)"
// @Success 200 {object} dto.APIResponse{data=dto.StatementListResponse} "Statements retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 404 {object} dto.ErrorResponse "No vouchers found for the period"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/statements [get]
func (c *StatementController) ListStatements(ctx *gin.Context) {
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

	academicYear := ctx.Query("academicYear")
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid month")
		errorDetail = errorDetail.WithDetails("Month must be a number between 1 and 12")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	statements, err := c.statementService.ListStatements(ctx, classID, academicYear, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.StatementListResponse{Statements: statements},
		Timestamp: time.Now(),
	})
}
