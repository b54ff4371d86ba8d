package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
)

// CreateVoucherRequest represents a request to create an empty voucher
type CreateVoucherRequest struct {
	StudentID int64  `json:"studentId" binding:"required" example:"42"`
	DueDate   string `json:"dueDate" binding:"required" example:"2024-03-31"` // calendar date, YYYY-MM-DD
}

// ApplyPaymentRequest represents a payment applied against a voucher
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"2000.00"`
}

// CreateLineItemRequest represents a request to attach a charge to a voucher
type CreateLineItemRequest struct {
	VoucherID int64           `json:"voucherId" binding:"required" example:"7"`
	FeeTypeID int64           `json:"feeTypeId" binding:"required" example:"1"`
	Amount    decimal.Decimal `json:"amount" binding:"required" example:"200.00"`
}

// UpdateLineItemRequest represents a request to change a line item's charge
type UpdateLineItemRequest struct {
	FeeTypeID int64           `json:"feeTypeId" binding:"required" example:"1"`
	Amount    decimal.Decimal `json:"amount" binding:"required" example:"250.00"`
}

// LineItemResponse represents a voucher line item in API responses
type LineItemResponse struct {
	ID          int64           `json:"id" example:"3"`
	VoucherID   int64           `json:"voucherId" example:"7"`
	FeeTypeID   int64           `json:"feeTypeId" example:"1"`
	FeeTypeName string          `json:"feeTypeName,omitempty" example:"tuition"`
	Amount      decimal.Decimal `json:"amount" example:"5000.00"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID          int64              `json:"id" example:"7"`
	Reference   string             `json:"reference" example:"VCH-6f1c2a9b"`
	StudentID   int64              `json:"studentId" example:"42"`
	StudentName string             `json:"studentName,omitempty" example:"Amina Yusuf"`
	DueDate     string             `json:"dueDate" example:"2024-03-31"`
	PaidAmount  decimal.Decimal    `json:"paidAmount" example:"2000.00"`
	Total       decimal.Decimal    `json:"total" example:"5200.00"`
	Status      string             `json:"status" example:"partial" enums:"pending,partial,paid"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	LineItems   []LineItemResponse `json:"lineItems,omitempty"`
}

// VoucherListResponse represents a paginated list of vouchers
type VoucherListResponse struct {
	Vouchers   []VoucherResponse `json:"vouchers"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromLineItem converts a models.VoucherLineItem to a LineItemResponse
func FromLineItem(li *models.VoucherLineItem) LineItemResponse {
	if li == nil {
		return LineItemResponse{}
	}
	return LineItemResponse{
		ID:          li.ID,
		VoucherID:   li.VoucherID,
		FeeTypeID:   li.FeeTypeID,
		FeeTypeName: li.FeeTypeName,
		Amount:      li.Amount,
		CreatedAt:   li.CreatedAt,
	}
}

// FromVoucher converts a models.Voucher to a VoucherResponse
func FromVoucher(v *models.Voucher) VoucherResponse {
	if v == nil {
		return VoucherResponse{}
	}
	resp := VoucherResponse{
		ID:          v.ID,
		Reference:   v.Reference,
		StudentID:   v.StudentID,
		StudentName: v.StudentName,
		DueDate:     v.DueDate.Format("2006-01-02"),
		PaidAmount:  v.PaidAmount,
		Total:       v.Total(),
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	for i := range v.LineItems {
		resp.LineItems = append(resp.LineItems, FromLineItem(&v.LineItems[i]))
	}
	return resp
}
