package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

const (
	insertFeeTypeSQL = `INSERT INTO fee_types \(name\) VALUES \(\$1\) RETURNING id`
	deleteFeeTypeSQL = `DELETE FROM fee_types WHERE id = \$1`
)

func newFeeTypeService(t *testing.T) (*FeeTypeService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewFeeTypeService(repositories.NewFeeTypeRepository(mock)), mock
}

func TestCreateFeeType_TrimsAndStores(t *testing.T) {
	service, mock := newFeeTypeService(t)

	mock.ExpectQuery(insertFeeTypeSQL).
		WithArgs("tuition").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	feeType := &models.FeeType{Name: "  tuition  "}
	err := service.CreateFeeType(context.Background(), feeType)
	require.NoError(t, err)
	assert.Equal(t, int64(1), feeType.ID)
	assert.Equal(t, "tuition", feeType.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeType_EmptyNameRejected(t *testing.T) {
	service, mock := newFeeTypeService(t)

	err := service.CreateFeeType(context.Background(), &models.FeeType{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFeeType_DuplicateName(t *testing.T) {
	service, mock := newFeeTypeService(t)

	mock.ExpectQuery(insertFeeTypeSQL).
		WithArgs("tuition").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "fee_types_name_key"})

	err := service.CreateFeeType(context.Background(), &models.FeeType{Name: "tuition"})
	assert.ErrorIs(t, err, apperrors.ErrFeeTypeNameExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeType_InUse(t *testing.T) {
	service, mock := newFeeTypeService(t)

	mock.ExpectExec(deleteFeeTypeSQL).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fee_structures_fee_type_id_fkey"})

	err := service.DeleteFeeType(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrFeeTypeInUse)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeType_NotFound(t *testing.T) {
	service, mock := newFeeTypeService(t)

	mock.ExpectExec(deleteFeeTypeSQL).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := service.DeleteFeeType(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrFeeTypeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
