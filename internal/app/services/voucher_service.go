package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/helpers"
)

// VoucherService handles voucher lifecycle and line-item mutations.
// Every line-item change runs in one transaction with the status
// rederivation of the owning voucher, so a voucher's status column never
// disagrees with its line items.
type VoucherService struct {
	pool        db.Pool
	voucherRepo *repositories.VoucherRepository
	studentRepo *repositories.StudentRepository
}

// NewVoucherService creates a new voucher service instance
func NewVoucherService(pool db.Pool, voucherRepo *repositories.VoucherRepository, studentRepo *repositories.StudentRepository) *VoucherService {
	return &VoucherService{
		pool:        pool,
		voucherRepo: voucherRepo,
		studentRepo: studentRepo,
	}
}

// NewVoucherReference produces a short printable voucher reference.
func NewVoucherReference() string {
	return "VCH-" + strings.Split(uuid.NewString(), "-")[0]
}

// CreateVoucher creates an empty voucher for a student and due date.
// Fails with a conflict when a voucher for that (student, due date)
// already exists.
func (s *VoucherService) CreateVoucher(ctx context.Context, studentID int64, dueDate string) (*models.Voucher, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	due, err := helpers.ParseDateOnly(dueDate)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("due date must be YYYY-MM-DD, got %q", dueDate))
	}

	voucher := &models.Voucher{
		Reference:  NewVoucherReference(),
		StudentID:  studentID,
		DueDate:    due,
		PaidAmount: decimal.Zero,
		Status:     models.StatusPending,
	}

	if err := s.voucherRepo.Create(ctx, s.pool, voucher); err != nil {
		return nil, err
	}

	return voucher, nil
}

// GetVoucher retrieves a voucher with student name and line items
func (s *VoucherService) GetVoucher(ctx context.Context, id int64) (*models.Voucher, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid voucher ID")
	}

	return s.voucherRepo.GetByID(ctx, id)
}

// ListVouchers retrieves a student's vouchers, newest due date first
func (s *VoucherService) ListVouchers(ctx context.Context, studentID int64, page, pageSize int) ([]models.Voucher, int64, error) {
	if studentID <= 0 {
		return nil, 0, apperrors.NewValidationError("invalid student ID")
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, 0, err
	}

	return s.voucherRepo.ListByStudent(ctx, studentID, page, pageSize)
}

// DeleteVoucher deletes a voucher and its line items
func (s *VoucherService) DeleteVoucher(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid voucher ID")
	}

	return s.voucherRepo.Delete(ctx, id)
}

// AddLineItem attaches a charge to a voucher and rederives its status
// within one transaction.
func (s *VoucherService) AddLineItem(ctx context.Context, item *models.VoucherLineItem) error {
	if item.VoucherID <= 0 {
		return apperrors.NewValidationError("invalid voucher ID")
	}
	if item.FeeTypeID <= 0 {
		return apperrors.NewValidationError("invalid fee type ID")
	}
	if !item.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	item.Amount = item.Amount.Round(2)

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		// Locking the voucher row first serializes concurrent line-item
		// changes and payments against the same voucher.
		paid, err := s.voucherRepo.LockPaidAmount(ctx, tx, item.VoucherID)
		if err != nil {
			return err
		}

		if err := s.voucherRepo.AddLineItem(ctx, tx, item); err != nil {
			return err
		}

		return s.refreshStatus(ctx, tx, item.VoucherID, paid)
	})
}

// UpdateLineItem changes a charge and rederives the owning voucher's
// status within one transaction.
func (s *VoucherService) UpdateLineItem(ctx context.Context, id int64, feeTypeID int64, amount decimal.Decimal) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid line item ID")
	}
	if feeTypeID <= 0 {
		return apperrors.NewValidationError("invalid fee type ID")
	}
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	amount = amount.Round(2)

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		item, err := s.voucherRepo.GetLineItem(ctx, tx, id)
		if err != nil {
			return err
		}

		paid, err := s.voucherRepo.LockPaidAmount(ctx, tx, item.VoucherID)
		if err != nil {
			return err
		}

		if err := s.voucherRepo.UpdateLineItem(ctx, tx, id, feeTypeID, amount); err != nil {
			return err
		}

		return s.refreshStatus(ctx, tx, item.VoucherID, paid)
	})
}

// DeleteLineItem removes a charge and rederives the owning voucher's
// status within one transaction.
func (s *VoucherService) DeleteLineItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid line item ID")
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		item, err := s.voucherRepo.GetLineItem(ctx, tx, id)
		if err != nil {
			return err
		}

		paid, err := s.voucherRepo.LockPaidAmount(ctx, tx, item.VoucherID)
		if err != nil {
			return err
		}

		if err := s.voucherRepo.DeleteLineItem(ctx, tx, id); err != nil {
			return err
		}

		return s.refreshStatus(ctx, tx, item.VoucherID, paid)
	})
}

// refreshStatus recomputes and persists the voucher status from the
// current line-item total and the locked paid amount.
func (s *VoucherService) refreshStatus(ctx context.Context, q repositories.Querier, voucherID int64, paid decimal.Decimal) error {
	total, err := s.voucherRepo.SumLineItems(ctx, q, voucherID)
	if err != nil {
		return err
	}

	return s.voucherRepo.UpdateStatus(ctx, q, voucherID, models.DeriveStatus(total, paid))
}
