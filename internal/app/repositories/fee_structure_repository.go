package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/dberrors"
	"github.com/schoolbill/backend/internal/pkg/logger"
)

// Fee structure error types
var (
	ErrFeeStructureNotFound = apperrors.ErrFeeStructureNotFound
	ErrFeeStructureExists   = apperrors.ErrFeeStructureExists
	ErrInvalidReference     = apperrors.ErrInvalidReference
)

// FeeStructureRepository handles database operations for fee structures
type FeeStructureRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeStructureRepository creates a new FeeStructureRepository
func NewFeeStructureRepository(pool db.Pool) *FeeStructureRepository {
	return &FeeStructureRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new fee structure
func (r *FeeStructureRepository) Create(ctx context.Context, structure *models.FeeStructure) error {
	sql, args, err := r.sb.Insert("fee_structures").
		Columns("class_id", "fee_type_id", "amount", "frequency", "academic_year").
		Values(structure.ClassID, structure.FeeTypeID, structure.Amount, structure.Frequency, structure.AcademicYear).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create fee structure SQL")
		return fmt.Errorf("failed to build create fee structure query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&structure.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrFeeStructureExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		logger.Error().Err(err).Msg("Error executing create fee structure query")
		return fmt.Errorf("error creating fee structure: %w", err)
	}

	return nil
}

// GetByID retrieves a fee structure by ID with its fee type name
func (r *FeeStructureRepository) GetByID(ctx context.Context, id int64) (*models.FeeStructure, error) {
	sql, args, err := r.sb.Select("fs.id", "fs.class_id", "fs.fee_type_id", "fs.amount", "fs.frequency", "fs.academic_year", "ft.name").
		From("fee_structures fs").
		Join("fee_types ft ON ft.id = fs.fee_type_id").
		Where(squirrel.Eq{"fs.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee structure query: %w", err)
	}

	structure := &models.FeeStructure{FeeType: &models.FeeType{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&structure.ID,
		&structure.ClassID,
		&structure.FeeTypeID,
		&structure.Amount,
		&structure.Frequency,
		&structure.AcademicYear,
		&structure.FeeType.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeeStructureNotFound
		}
		logger.Error().Err(err).Int64("feeStructureID", id).Msg("Error scanning fee structure row")
		return nil, fmt.Errorf("error getting fee structure by ID: %w", err)
	}
	structure.FeeType.ID = structure.FeeTypeID

	return structure, nil
}

// GetAll retrieves fee structures, optionally filtered by class and academic year
func (r *FeeStructureRepository) GetAll(ctx context.Context, classID *int64, academicYear *string) ([]*models.FeeStructure, error) {
	query := r.sb.Select("fs.id", "fs.class_id", "fs.fee_type_id", "fs.amount", "fs.frequency", "fs.academic_year", "ft.name").
		From("fee_structures fs").
		Join("fee_types ft ON ft.id = fs.fee_type_id").
		OrderBy("fs.academic_year DESC", "fs.class_id ASC")

	if classID != nil {
		query = query.Where(squirrel.Eq{"fs.class_id": *classID})
	}
	if academicYear != nil {
		query = query.Where(squirrel.Eq{"fs.academic_year": *academicYear})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fee structures query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying fee structures: %w", err)
	}
	defer rows.Close()

	structures := []*models.FeeStructure{}
	for rows.Next() {
		structure := &models.FeeStructure{FeeType: &models.FeeType{}}
		if err := rows.Scan(
			&structure.ID,
			&structure.ClassID,
			&structure.FeeTypeID,
			&structure.Amount,
			&structure.Frequency,
			&structure.AcademicYear,
			&structure.FeeType.Name,
		); err != nil {
			return nil, fmt.Errorf("error scanning fee structure row: %w", err)
		}
		structure.FeeType.ID = structure.FeeTypeID
		structures = append(structures, structure)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return structures, nil
}

// GetMonthlyByClassYear retrieves the monthly fee structures for a class
// and academic year. Runs on the caller's Querier so bulk generation can
// read inside its batch transaction.
func (r *FeeStructureRepository) GetMonthlyByClassYear(ctx context.Context, q Querier, classID int64, academicYear string) ([]*models.FeeStructure, error) {
	query := `
		SELECT id, class_id, fee_type_id, amount, frequency, academic_year
		FROM fee_structures
		WHERE class_id = $1 AND academic_year = $2 AND frequency = $3
		ORDER BY id ASC
	`

	rows, err := q.Query(ctx, query, classID, academicYear, models.FrequencyMonthly)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly fee structures: %w", err)
	}
	defer rows.Close()

	structures := []*models.FeeStructure{}
	for rows.Next() {
		var structure models.FeeStructure
		if err := rows.Scan(
			&structure.ID,
			&structure.ClassID,
			&structure.FeeTypeID,
			&structure.Amount,
			&structure.Frequency,
			&structure.AcademicYear,
		); err != nil {
			return nil, fmt.Errorf("error scanning fee structure row: %w", err)
		}
		structures = append(structures, &structure)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return structures, nil
}

// Update updates an existing fee structure
func (r *FeeStructureRepository) Update(ctx context.Context, structure *models.FeeStructure) error {
	sql, args, err := r.sb.Update("fee_structures").
		Set("class_id", structure.ClassID).
		Set("fee_type_id", structure.FeeTypeID).
		Set("amount", structure.Amount).
		Set("frequency", structure.Frequency).
		Set("academic_year", structure.AcademicYear).
		Where(squirrel.Eq{"id": structure.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee structure query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrFeeStructureExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("error updating fee structure: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFeeStructureNotFound
	}

	return nil
}

// Delete deletes a fee structure by ID
func (r *FeeStructureRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM fee_structures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting fee structure: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrFeeStructureNotFound
	}

	return nil
}
