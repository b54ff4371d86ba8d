package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/helpers"
	"github.com/schoolbill/backend/internal/pkg/logger"
	"github.com/schoolbill/backend/internal/pkg/validation"
)

// GenerationService materializes monthly fee structures into one voucher
// plus line items per eligible student. Re-running a period is safe: the
// (student, period) check skips students that already have a voucher.
type GenerationService struct {
	pool             db.Pool
	voucherRepo      *repositories.VoucherRepository
	feeStructureRepo *repositories.FeeStructureRepository
	studentRepo      *repositories.StudentRepository
}

// NewGenerationService creates a new generation service instance
func NewGenerationService(
	pool db.Pool,
	voucherRepo *repositories.VoucherRepository,
	feeStructureRepo *repositories.FeeStructureRepository,
	studentRepo *repositories.StudentRepository,
) *GenerationService {
	return &GenerationService{
		pool:             pool,
		voucherRepo:      voucherRepo,
		feeStructureRepo: feeStructureRepo,
		studentRepo:      studentRepo,
	}
}

// GenerateMonthly creates vouchers for every eligible student with
// monthly fee structures for the academic year, due on the last day of
// month. The whole batch runs in one transaction: a mid-batch failure
// rolls back every insert, so no voucher is ever left without its line
// items. Students that already have a voucher for the period, or whose
// class has no monthly structures, are skipped silently.
func (s *GenerationService) GenerateMonthly(ctx context.Context, academicYear string, month int, classID *int64) (*dto.GenerationResponse, error) {
	firstYear, err := validation.ValidateAcademicYear(academicYear)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := validation.ValidateMonth(month); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	dueDate := helpers.LastDayOfMonth(firstYear, time.Month(month))

	var students []models.Student
	if classID != nil {
		exists, err := s.studentRepo.ClassExists(ctx, *classID)
		if err != nil {
			return nil, fmt.Errorf("error checking class: %w", err)
		}
		if !exists {
			return nil, apperrors.NewInvalidReferenceError(fmt.Sprintf("class %d does not exist", *classID))
		}
		students, err = s.studentRepo.GetByClassID(ctx, *classID)
		if err != nil {
			return nil, err
		}
	} else {
		students, err = s.studentRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(students) == 0 {
		return nil, apperrors.ErrNoEligibleStudents
	}

	var generated []dto.GeneratedVoucher

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		// Monthly structures rarely differ per student within a class, so
		// cache lookups by class for the duration of the batch.
		structuresByClass := make(map[int64][]*models.FeeStructure)

		for _, student := range students {
			structures, ok := structuresByClass[student.ClassID]
			if !ok {
				structures, err = s.feeStructureRepo.GetMonthlyByClassYear(ctx, tx, student.ClassID, academicYear)
				if err != nil {
					return err
				}
				structuresByClass[student.ClassID] = structures
			}

			if len(structures) == 0 {
				continue // class not configured for this year
			}

			exists, err := s.voucherRepo.ExistsForPeriod(ctx, tx, student.ID, firstYear, month)
			if err != nil {
				return err
			}
			if exists {
				continue // already generated for this period
			}

			voucher := &models.Voucher{
				Reference:  NewVoucherReference(),
				StudentID:  student.ID,
				DueDate:    dueDate,
				PaidAmount: decimal.Zero,
				Status:     models.StatusPending,
			}
			if err := s.voucherRepo.Create(ctx, tx, voucher); err != nil {
				// A racing generation run may have inserted this voucher
				// after our existence check; the batch aborts and the
				// caller re-runs, converging on the same voucher set.
				return err
			}

			total := decimal.Zero
			for _, structure := range structures {
				item := &models.VoucherLineItem{
					VoucherID: voucher.ID,
					FeeTypeID: structure.FeeTypeID,
					Amount:    structure.Amount,
				}
				if err := s.voucherRepo.AddLineItem(ctx, tx, item); err != nil {
					return err
				}
				total = total.Add(structure.Amount)
			}

			generated = append(generated, dto.GeneratedVoucher{
				VoucherID:   voucher.ID,
				Reference:   voucher.Reference,
				StudentID:   student.ID,
				StudentName: student.Name,
				DueDate:     dueDate.Format("2006-01-02"),
				Total:       total,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("academicYear", academicYear).
		Int("month", month).
		Int("eligible", len(students)).
		Int("generated", len(generated)).
		Msg("Monthly voucher generation completed")

	return &dto.GenerationResponse{
		Message:  fmt.Sprintf("generated %d vouchers for %04d-%02d", len(generated), firstYear, month),
		Vouchers: generated,
	}, nil
}
