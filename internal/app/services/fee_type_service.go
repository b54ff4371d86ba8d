package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

// FeeTypeService handles fee type catalog operations
type FeeTypeService struct {
	feeTypeRepo *repositories.FeeTypeRepository
}

// NewFeeTypeService creates a new fee type service instance
func NewFeeTypeService(feeTypeRepo *repositories.FeeTypeRepository) *FeeTypeService {
	return &FeeTypeService{feeTypeRepo: feeTypeRepo}
}

// CreateFeeType creates a new fee type
func (s *FeeTypeService) CreateFeeType(ctx context.Context, feeType *models.FeeType) error {
	feeType.Name = strings.TrimSpace(feeType.Name)
	if feeType.Name == "" {
		return apperrors.NewValidationError("fee type name cannot be empty")
	}

	if err := s.feeTypeRepo.Create(ctx, feeType); err != nil {
		if apperrors.Is(err, apperrors.ErrFeeTypeNameExists) {
			return err
		}
		return fmt.Errorf("error creating fee type: %w", err)
	}

	return nil
}

// GetFeeTypeByID retrieves a fee type by ID
func (s *FeeTypeService) GetFeeTypeByID(ctx context.Context, id int64) (*models.FeeType, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid fee type ID")
	}

	return s.feeTypeRepo.GetByID(ctx, id)
}

// GetAllFeeTypes retrieves all fee types
func (s *FeeTypeService) GetAllFeeTypes(ctx context.Context) ([]*models.FeeType, error) {
	feeTypes, err := s.feeTypeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving fee types: %w", err)
	}

	return feeTypes, nil
}

// UpdateFeeType renames an existing fee type
func (s *FeeTypeService) UpdateFeeType(ctx context.Context, feeType *models.FeeType) error {
	if feeType.ID <= 0 {
		return apperrors.NewValidationError("invalid fee type ID")
	}

	feeType.Name = strings.TrimSpace(feeType.Name)
	if feeType.Name == "" {
		return apperrors.NewValidationError("fee type name cannot be empty")
	}

	return s.feeTypeRepo.Update(ctx, feeType)
}

// DeleteFeeType deletes a fee type. Deletion is restricted while any
// fee structure or voucher line item still references it.
func (s *FeeTypeService) DeleteFeeType(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid fee type ID")
	}

	return s.feeTypeRepo.Delete(ctx, id)
}
