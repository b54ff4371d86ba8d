package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	dec := decimal.RequireFromString

	tests := []struct {
		name  string
		total string
		paid  string
		want  VoucherStatus
	}{
		{"nothing paid", "5000.00", "0", StatusPending},
		{"zero paid on empty voucher", "0", "0", StatusPending},
		{"partial payment", "5000.00", "2000.00", StatusPartial},
		{"one cent short", "5000.00", "4999.99", StatusPartial},
		{"exact payment", "5000.00", "5000.00", StatusPaid},
		{"paid above total after removal", "3000.00", "3500.00", StatusPaid},
		{"positive paid against empty voucher", "0", "100.00", StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(dec(tt.total), dec(tt.paid)))
		})
	}
}

func TestFrequencyIsValid(t *testing.T) {
	assert.True(t, FrequencyMonthly.IsValid())
	assert.True(t, FrequencyAnnual.IsValid())
	assert.True(t, FrequencyOneTime.IsValid())
	assert.False(t, Frequency("weekly").IsValid())
	assert.False(t, Frequency("").IsValid())
}

func TestVoucherTotal(t *testing.T) {
	v := Voucher{
		LineItems: []VoucherLineItem{
			{Amount: decimal.RequireFromString("5000.00")},
			{Amount: decimal.RequireFromString("200.00")},
		},
	}
	assert.True(t, v.Total().Equal(decimal.RequireFromString("5200.00")))

	empty := Voucher{}
	assert.True(t, empty.Total().IsZero())
}
