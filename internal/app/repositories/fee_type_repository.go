package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/dberrors"
)

// Fee type error types
var (
	ErrFeeTypeNotFound   = apperrors.ErrFeeTypeNotFound
	ErrFeeTypeNameExists = apperrors.ErrFeeTypeNameExists
	ErrFeeTypeInUse      = apperrors.ErrFeeTypeInUse
)

// FeeTypeRepository handles database operations for fee types
type FeeTypeRepository struct {
	db db.Pool
}

// NewFeeTypeRepository creates a new fee type repository
func NewFeeTypeRepository(pool db.Pool) *FeeTypeRepository {
	return &FeeTypeRepository{db: pool}
}

// Create creates a new fee type
func (r *FeeTypeRepository) Create(ctx context.Context, feeType *models.FeeType) error {
	query := `
		INSERT INTO fee_types (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, feeType.Name).Scan(&feeType.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrFeeTypeNameExists
		}
		return fmt.Errorf("error creating fee type: %w", err)
	}

	return nil
}

// GetByID retrieves a fee type by ID
func (r *FeeTypeRepository) GetByID(ctx context.Context, id int64) (*models.FeeType, error) {
	query := `
		SELECT id, name
		FROM fee_types
		WHERE id = $1
	`

	var feeType models.FeeType
	err := r.db.QueryRow(ctx, query, id).Scan(&feeType.ID, &feeType.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeeTypeNotFound
		}
		return nil, fmt.Errorf("error retrieving fee type: %w", err)
	}

	return &feeType, nil
}

// GetAll retrieves all fee types ordered by name
func (r *FeeTypeRepository) GetAll(ctx context.Context) ([]*models.FeeType, error) {
	query := `
		SELECT id, name
		FROM fee_types
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying fee types: %w", err)
	}
	defer rows.Close()

	var feeTypes []*models.FeeType
	for rows.Next() {
		var feeType models.FeeType
		if err := rows.Scan(&feeType.ID, &feeType.Name); err != nil {
			return nil, fmt.Errorf("error scanning fee type row: %w", err)
		}
		feeTypes = append(feeTypes, &feeType)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feeTypes, nil
}

// Update renames an existing fee type
func (r *FeeTypeRepository) Update(ctx context.Context, feeType *models.FeeType) error {
	query := `
		UPDATE fee_types
		SET name = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, feeType.Name, feeType.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrFeeTypeNameExists
		}
		return fmt.Errorf("error updating fee type: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFeeTypeNotFound
	}

	return nil
}

// Delete deletes a fee type by ID. The schema restricts deletion while
// fee structures or voucher line items still reference the type.
func (r *FeeTypeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM fee_types WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrFeeTypeInUse
		}
		return fmt.Errorf("error deleting fee type: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFeeTypeNotFound
	}

	return nil
}
