package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/logger"
)

// PaymentService applies payments against vouchers. It is the only
// legitimate path that mutates paid_amount, and it never decreases it.
type PaymentService struct {
	pool        db.Pool
	voucherRepo *repositories.VoucherRepository
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(pool db.Pool, voucherRepo *repositories.VoucherRepository) *PaymentService {
	return &PaymentService{
		pool:        pool,
		voucherRepo: voucherRepo,
	}
}

// ApplyPayment adds amount to the voucher's paid total, rejecting
// payments that would exceed the line-item total. The read-modify-write
// of paid_amount runs under a row lock so two concurrent payments cannot
// both observe the same stale value and together overshoot the total.
func (s *PaymentService) ApplyPayment(ctx context.Context, voucherID int64, amount decimal.Decimal) (*models.Voucher, error) {
	if voucherID <= 0 {
		return nil, apperrors.NewValidationError("invalid voucher ID")
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be greater than zero")
	}
	amount = amount.Round(2)

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		paid, err := s.voucherRepo.LockPaidAmount(ctx, tx, voucherID)
		if err != nil {
			return err
		}

		total, err := s.voucherRepo.SumLineItems(ctx, tx, voucherID)
		if err != nil {
			return err
		}

		newPaid := paid.Add(amount)
		if newPaid.GreaterThan(total) {
			// exact decimal comparison, no rounding tolerance
			return apperrors.ErrOverpayment
		}

		status := models.DeriveStatus(total, newPaid)
		if err := s.voucherRepo.UpdatePayment(ctx, tx, voucherID, newPaid, status); err != nil {
			return err
		}

		logger.Info().
			Int64("voucherID", voucherID).
			Str("amount", amount.StringFixed(2)).
			Str("paidAmount", newPaid.StringFixed(2)).
			Str("status", string(status)).
			Msg("Payment applied")

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.voucherRepo.GetByID(ctx, voucherID)
}
