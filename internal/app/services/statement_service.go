package services

import (
	"context"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/validation"
)

// StatementService exposes the read-only voucher projection consumed by
// the document renderer. It never mutates voucher state; status is
// already consistent by construction.
type StatementService struct {
	voucherRepo *repositories.VoucherRepository
}

// NewStatementService creates a new statement service instance
func NewStatementService(voucherRepo *repositories.VoucherRepository) *StatementService {
	return &StatementService{voucherRepo: voucherRepo}
}

// buildStatement converts a loaded voucher into its statement projection
func buildStatement(voucher *models.Voucher) dto.StatementResponse {
	total := voucher.Total()
	statement := dto.StatementResponse{
		VoucherID:   voucher.ID,
		Reference:   voucher.Reference,
		StudentID:   voucher.StudentID,
		StudentName: voucher.StudentName,
		DueDate:     voucher.DueDate.Format("2006-01-02"),
		Status:      string(voucher.Status),
		PaidAmount:  voucher.PaidAmount,
		Total:       total,
		Balance:     total.Sub(voucher.PaidAmount),
		Lines:       []dto.StatementLine{},
	}
	for _, li := range voucher.LineItems {
		statement.Lines = append(statement.Lines, dto.StatementLine{
			FeeTypeName: li.FeeTypeName,
			Amount:      li.Amount,
		})
	}
	return statement
}

// GetStatement returns the statement projection for one voucher
func (s *StatementService) GetStatement(ctx context.Context, voucherID int64) (*dto.StatementResponse, error) {
	if voucherID <= 0 {
		return nil, apperrors.NewValidationError("invalid voucher ID")
	}

	voucher, err := s.voucherRepo.GetByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	statement := buildStatement(voucher)
	return &statement, nil
}

// ListStatements returns statement projections for every voucher due in
// the given period, optionally restricted to one class. Fails with a
// not-found error when the filter matches no vouchers.
func (s *StatementService) ListStatements(ctx context.Context, classID *int64, academicYear string, month int) ([]dto.StatementResponse, error) {
	firstYear, err := validation.ValidateAcademicYear(academicYear)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validation.ValidateMonth(month); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	vouchers, err := s.voucherRepo.ListByPeriod(ctx, classID, firstYear, month)
	if err != nil {
		return nil, err
	}

	if len(vouchers) == 0 {
		return nil, apperrors.ErrNoMatchingVouchers
	}

	statements := make([]dto.StatementResponse, 0, len(vouchers))
	for i := range vouchers {
		statements = append(statements, buildStatement(&vouchers[i]))
	}

	return statements, nil
}
