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
	"github.com/schoolbill/backend/internal/pkg/helpers"
)

// VoucherController handles voucher lifecycle, line item and payment endpoints
type VoucherController struct {
	voucherService *services.VoucherService
	paymentService *services.PaymentService
}

// NewVoucherController creates a new VoucherController
func NewVoucherController(voucherService *services.VoucherService, paymentService *services.PaymentService) *VoucherController {
	return &VoucherController{
		voucherService: voucherService,
		paymentService: paymentService,
	}
}

// CreateVoucher handles creation of an empty voucher for a student
// @Summary Create a new voucher
// @Description Creates an empty voucher for a student; charges are attached as line items
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.CreateVoucherRequest true "Voucher information"
// @Success 201 {object} dto.APIResponse{data=dto.VoucherResponse} "Voucher created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Voucher already exists for this student and due date"
// @Failure 422 {object} dto.ErrorResponse "Student does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/vouchers [post]
func (c *VoucherController) CreateVoucher(ctx *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid voucher data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	voucher, err := c.voucherService.CreateVoucher(ctx, req.StudentID, req.DueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVoucher(voucher),
		Timestamp: time.Now(),
	})
}

// GetVoucherByID retrieves a voucher with its line items
// @Summary Get voucher by ID
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path int true "Voucher ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoucherResponse} "Voucher retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid voucher ID"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/vouchers/{id} [get]
func (c *VoucherController) GetVoucherByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid voucher ID")
		errorDetail = errorDetail.WithDetails("Voucher ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	voucher, err := c.voucherService.GetVoucher(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVoucher(voucher),
		Timestamp: time.Now(),
	})
}

// ListStudentVouchers retrieves a student's vouchers, newest due date first
// @Summary List vouchers for a student
// @Tags vouchers
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.VoucherListResponse} "Vouchers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/students/{studentId}/vouchers [get]
func (c *VoucherController) ListStudentVouchers(ctx *gin.Context) {
	studentID, err := strconv.ParseInt(ctx.Param("studentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")
		errorDetail = errorDetail.WithDetails("Student ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	vouchers, total, err := c.voucherService.ListVouchers(ctx, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		responses = append(responses, dto.FromVoucher(&vouchers[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.VoucherListResponse{
			Vouchers:   responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// DeleteVoucher deletes a voucher and its line items
// @Summary Delete a voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path int true "Voucher ID"
// @Success 204 "Voucher deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid voucher ID"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/vouchers/{id} [delete]
func (c *VoucherController) DeleteVoucher(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid voucher ID")
		errorDetail = errorDetail.WithDetails("Voucher ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.voucherService.DeleteVoucher(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ApplyPayment records a payment against a voucher
// @Summary Apply a payment to a voucher
// @Description Adds the paid amount to the voucher and rederives its status; overpayment is rejected
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path int true "Voucher ID"
// @Param request body dto.ApplyPaymentRequest true "Payment amount"
// @Success 200 {object} dto.APIResponse{data=dto.VoucherResponse} "Payment applied successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment data"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 422 {object} dto.ErrorResponse "Payment would exceed the voucher total"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/vouchers/{id}/payment [patch]
func (c *VoucherController) ApplyPayment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid voucher ID")
		errorDetail = errorDetail.WithDetails("Voucher ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ApplyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	voucher, err := c.paymentService.ApplyPayment(ctx, id, req.Amount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVoucher(voucher),
		Timestamp: time.Now(),
	})
}

// AddLineItem attaches a charge to a voucher
// @Summary Add a line item to a voucher
// @Tags line-items
// @Accept json
// @Produce json
// @Param request body dto.CreateLineItemRequest true "Line item information"
// @Success 201 {object} dto.APIResponse{data=dto.LineItemResponse} "Line item added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid line item data"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 422 {object} dto.ErrorResponse "Fee type does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/line-items [post]
func (c *VoucherController) AddLineItem(ctx *gin.Context) {
	var req dto.CreateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid line item data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item := models.VoucherLineItem{
		VoucherID: req.VoucherID,
		FeeTypeID: req.FeeTypeID,
		Amount:    req.Amount,
	}
	if err := c.voucherService.AddLineItem(ctx, &item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromLineItem(&item),
		Timestamp: time.Now(),
	})
}

// UpdateLineItem changes a line item's fee type or amount
// @Summary Update a line item
// @Description Updates a charge and rederives the owning voucher's status
// @Tags line-items
// @Accept json
// @Produce json
// @Param id path int true "Line item ID"
// @Param request body dto.UpdateLineItemRequest true "Updated line item information"
// @Success 200 {object} dto.SuccessResponse "Line item updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid line item data"
// @Failure 404 {object} dto.ErrorResponse "Line item not found"
// @Failure 422 {object} dto.ErrorResponse "Fee type does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/line-items/{id} [put]
func (c *VoucherController) UpdateLineItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid line item ID")
		errorDetail = errorDetail.WithDetails("Line item ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid line item data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.voucherService.UpdateLineItem(ctx, id, req.FeeTypeID, req.Amount); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Line item updated successfully"},
		Timestamp: time.Now(),
	})
}

// DeleteLineItem removes a charge from a voucher
// @Summary Delete a line item
// @Description Removes a charge and rederives the owning voucher's status
// @Tags line-items
// @Accept json
// @Produce json
// @Param id path int true "Line item ID"
// @Success 204 "Line item deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid line item ID"
// @Failure 404 {object} dto.ErrorResponse "Line item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee/line-items/{id} [delete]
func (c *VoucherController) DeleteLineItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid line item ID")
		errorDetail = errorDetail.WithDetails("Line item ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.voucherService.DeleteLineItem(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
