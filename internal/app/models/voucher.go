package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the billing document for one student covering one due
// date. Exactly one voucher may exist per (student, due date); the
// database enforces this with a unique constraint.
type Voucher struct {
	ID         int64           `json:"id"`
	Reference  string          `json:"reference"`
	StudentID  int64           `json:"studentId"`
	DueDate    time.Time       `json:"dueDate"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Status     VoucherStatus   `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	// Relations (populated when needed)
	StudentName string            `json:"studentName,omitempty"`
	LineItems   []VoucherLineItem `json:"lineItems,omitempty"`
}

// Total sums the amounts of the attached line items. Only meaningful
// when LineItems has been loaded.
func (v *Voucher) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range v.LineItems {
		total = total.Add(li.Amount)
	}
	return total
}

// VoucherLineItem is one fee-type charge attached to a voucher. Line
// items are owned exclusively by their voucher and are deleted with it.
type VoucherLineItem struct {
	ID        int64           `json:"id"`
	VoucherID int64           `json:"voucherId"`
	FeeTypeID int64           `json:"feeTypeId"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`

	FeeTypeName string `json:"feeTypeName,omitempty"`
}
