package dto

import "github.com/shopspring/decimal"

// GenerateMonthlyRequest triggers bulk voucher generation for a period
type GenerateMonthlyRequest struct {
	ClassID      *int64 `json:"classId,omitempty" example:"1"` // optional class filter
	AcademicYear string `json:"academicYear" binding:"required" example:"2024-2025"`
	Month        int    `json:"month" binding:"required" example:"3" minimum:"1" maximum:"12"`
}

// GeneratedVoucher describes one voucher produced by a generation run
type GeneratedVoucher struct {
	VoucherID   int64           `json:"voucherId" example:"7"`
	Reference   string          `json:"reference" example:"VCH-6f1c2a9b"`
	StudentID   int64           `json:"studentId" example:"42"`
	StudentName string          `json:"studentName" example:"Amina Yusuf"`
	DueDate     string          `json:"dueDate" example:"2024-03-31"`
	Total       decimal.Decimal `json:"total" example:"5200.00"`
}

// GenerationResponse summarizes a bulk generation run. Students skipped
// because they already had a voucher for the period, or had no matching
// monthly structures, are simply absent from Vouchers.
type GenerationResponse struct {
	Message  string             `json:"message" example:"generated 2 vouchers for 2024-03"`
	Vouchers []GeneratedVoucher `json:"vouchers"`
}
