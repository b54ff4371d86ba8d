package dto

import "github.com/shopspring/decimal"

// StatementLine is one charge row on a printable statement
type StatementLine struct {
	FeeTypeName string          `json:"feeTypeName" example:"tuition"`
	Amount      decimal.Decimal `json:"amount" example:"5000.00"`
}

// StatementResponse is the read-only projection handed to the document
// renderer: one voucher with student name, charges and computed totals.
type StatementResponse struct {
	VoucherID   int64           `json:"voucherId" example:"7"`
	Reference   string          `json:"reference" example:"VCH-6f1c2a9b"`
	StudentID   int64           `json:"studentId" example:"42"`
	StudentName string          `json:"studentName" example:"Amina Yusuf"`
	DueDate     string          `json:"dueDate" example:"2024-03-31"`
	Status      string          `json:"status" example:"pending"`
	PaidAmount  decimal.Decimal `json:"paidAmount" example:"0.00"`
	Total       decimal.Decimal `json:"total" example:"5200.00"`
	Balance     decimal.Decimal `json:"balance" example:"5200.00"`
	Lines       []StatementLine `json:"lines"`
}

// StatementListResponse wraps a batch of statements for bulk export
type StatementListResponse struct {
	Statements []StatementResponse `json:"statements"`
}
