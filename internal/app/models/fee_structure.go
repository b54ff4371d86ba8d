package models

import "github.com/shopspring/decimal"

// FeeStructure represents a configured fee obligation for a class and
// academic year. Changing a structure never touches vouchers that were
// already generated from it.
type FeeStructure struct {
	ID           int64           `json:"id"`
	ClassID      int64           `json:"classId"`
	FeeTypeID    int64           `json:"feeTypeId"`
	Amount       decimal.Decimal `json:"amount"`
	Frequency    Frequency       `json:"frequency"`
	AcademicYear string          `json:"academicYear"`

	// Relations (populated when needed)
	FeeType *FeeType `json:"feeType,omitempty"`
}
