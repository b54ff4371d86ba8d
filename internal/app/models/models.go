package models

import "github.com/shopspring/decimal"

// Frequency defines how often a fee structure is charged
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
	FrequencyOneTime Frequency = "one-time"
)

// IsValid reports whether f is one of the known frequency values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

// VoucherStatus represents the payment state of a voucher
type VoucherStatus string

const (
	StatusPending VoucherStatus = "pending"
	StatusPartial VoucherStatus = "partial"
	StatusPaid    VoucherStatus = "paid"
)

// DeriveStatus computes the voucher status from its line-item total and
// accumulated paid amount. Every mutating path (payments, line-item
// changes, generation) must go through this function; the status column
// is never written from anywhere else.
func DeriveStatus(total, paid decimal.Decimal) VoucherStatus {
	if paid.IsZero() {
		return StatusPending
	}
	if total.IsPositive() && paid.GreaterThanOrEqual(total) {
		return StatusPaid
	}
	return StatusPartial
}
