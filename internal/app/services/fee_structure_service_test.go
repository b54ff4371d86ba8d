package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

const insertFeeStructureSQL = `INSERT INTO fee_structures \(class_id,fee_type_id,amount,frequency,academic_year\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id`

func newFeeStructureService(t *testing.T) (*FeeStructureService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	service := NewFeeStructureService(
		repositories.NewFeeStructureRepository(mock),
		repositories.NewStudentRepository(mock),
	)
	return service, mock
}

func validStructure() *models.FeeStructure {
	return &models.FeeStructure{
		ClassID:      1,
		FeeTypeID:    2,
		Amount:       decimal.RequireFromString("1500"),
		Frequency:    models.FrequencyMonthly,
		AcademicYear: "2024-2025",
	}
}

func TestCreateFeeStructure_ValidatesBeforeTouchingTheDatabase(t *testing.T) {
	service, mock := newFeeStructureService(t)

	cases := []struct {
		name   string
		mutate func(*models.FeeStructure)
	}{
		{"zero amount", func(s *models.FeeStructure) { s.Amount = decimal.Zero }},
		{"negative amount", func(s *models.FeeStructure) { s.Amount = decimal.RequireFromString("-10") }},
		{"unknown frequency", func(s *models.FeeStructure) { s.Frequency = models.Frequency("weekly") }},
		{"non-consecutive academic year", func(s *models.FeeStructure) { s.AcademicYear = "2024-2026" }},
		{"missing class", func(s *models.FeeStructure) { s.ClassID = 0 }},
		{"missing fee type", func(s *models.FeeStructure) { s.FeeTypeID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			structure := validStructure()
			tc.mutate(structure)

			err := service.CreateFeeStructure(context.Background(), structure)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeStructure_RoundsAmountAndStores(t *testing.T) {
	service, mock := newFeeStructureService(t)

	structure := validStructure()
	structure.Amount = decimal.RequireFromString("1500.005")

	mock.ExpectQuery(classExistsSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(insertFeeStructureSQL).
		WithArgs(int64(1), int64(2), decimal.RequireFromString("1500.00"), models.FrequencyMonthly, "2024-2025").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := service.CreateFeeStructure(context.Background(), structure)
	require.NoError(t, err)
	assert.Equal(t, int64(7), structure.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeStructure_UnknownClassRejected(t *testing.T) {
	service, mock := newFeeStructureService(t)

	mock.ExpectQuery(classExistsSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := service.CreateFeeStructure(context.Background(), validStructure())
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeStructure_DuplicateCombination(t *testing.T) {
	service, mock := newFeeStructureService(t)

	mock.ExpectQuery(classExistsSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(insertFeeStructureSQL).
		WithArgs(int64(1), int64(2), decimal.RequireFromString("1500.00"), models.FrequencyMonthly, "2024-2025").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "fee_structures_class_id_fee_type_id_academic_year_frequency_key"})

	err := service.CreateFeeStructure(context.Background(), validStructure())
	assert.ErrorIs(t, err, apperrors.ErrFeeStructureExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllFeeStructures_RejectsMalformedYearFilter(t *testing.T) {
	service, mock := newFeeStructureService(t)

	badYear := "24-25"
	_, err := service.GetAllFeeStructures(context.Background(), nil, &badYear)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeStructure_NotFound(t *testing.T) {
	service, mock := newFeeStructureService(t)

	mock.ExpectExec(`DELETE FROM fee_structures WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := service.DeleteFeeStructure(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrFeeStructureNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
