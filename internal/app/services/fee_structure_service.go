package services

import (
	"context"
	"fmt"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/validation"
)

// FeeStructureService handles fee obligation configuration. Updating a
// structure never retroactively alters already-generated vouchers.
type FeeStructureService struct {
	feeStructureRepo *repositories.FeeStructureRepository
	studentRepo      *repositories.StudentRepository
}

// NewFeeStructureService creates a new fee structure service instance
func NewFeeStructureService(feeStructureRepo *repositories.FeeStructureRepository, studentRepo *repositories.StudentRepository) *FeeStructureService {
	return &FeeStructureService{
		feeStructureRepo: feeStructureRepo,
		studentRepo:      studentRepo,
	}
}

// validateStructure validates fee structure data before database operations
func (s *FeeStructureService) validateStructure(structure *models.FeeStructure) error {
	if structure == nil {
		return apperrors.NewValidationError("fee structure is nil")
	}

	if structure.ClassID <= 0 {
		return apperrors.NewValidationError("class ID must be positive")
	}

	if structure.FeeTypeID <= 0 {
		return apperrors.NewValidationError("fee type ID must be positive")
	}

	if !structure.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}

	if !structure.Frequency.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown frequency %q", structure.Frequency))
	}

	if _, err := validation.ValidateAcademicYear(structure.AcademicYear); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	// amounts are stored with two-decimal precision
	structure.Amount = structure.Amount.Round(2)

	return nil
}

// CreateFeeStructure creates a new fee structure
func (s *FeeStructureService) CreateFeeStructure(ctx context.Context, structure *models.FeeStructure) error {
	if err := s.validateStructure(structure); err != nil {
		return err
	}

	exists, err := s.studentRepo.ClassExists(ctx, structure.ClassID)
	if err != nil {
		return fmt.Errorf("error checking class: %w", err)
	}
	if !exists {
		return apperrors.NewInvalidReferenceError(fmt.Sprintf("class %d does not exist", structure.ClassID))
	}

	return s.feeStructureRepo.Create(ctx, structure)
}

// GetFeeStructureByID retrieves a fee structure by ID
func (s *FeeStructureService) GetFeeStructureByID(ctx context.Context, id int64) (*models.FeeStructure, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid fee structure ID")
	}

	return s.feeStructureRepo.GetByID(ctx, id)
}

// GetAllFeeStructures retrieves fee structures with optional filters
func (s *FeeStructureService) GetAllFeeStructures(ctx context.Context, classID *int64, academicYear *string) ([]*models.FeeStructure, error) {
	if academicYear != nil {
		if _, err := validation.ValidateAcademicYear(*academicYear); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	structures, err := s.feeStructureRepo.GetAll(ctx, classID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("error retrieving fee structures: %w", err)
	}

	return structures, nil
}

// UpdateFeeStructure updates an existing fee structure
func (s *FeeStructureService) UpdateFeeStructure(ctx context.Context, structure *models.FeeStructure) error {
	if structure.ID <= 0 {
		return apperrors.NewValidationError("invalid fee structure ID")
	}

	if err := s.validateStructure(structure); err != nil {
		return err
	}

	exists, err := s.studentRepo.ClassExists(ctx, structure.ClassID)
	if err != nil {
		return fmt.Errorf("error checking class: %w", err)
	}
	if !exists {
		return apperrors.NewInvalidReferenceError(fmt.Sprintf("class %d does not exist", structure.ClassID))
	}

	return s.feeStructureRepo.Update(ctx, structure)
}

// DeleteFeeStructure deletes a fee structure by ID
func (s *FeeStructureService) DeleteFeeStructure(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid fee structure ID")
	}

	return s.feeStructureRepo.Delete(ctx, id)
}
