package services

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

const listByPeriodSQL = `FROM vouchers v JOIN students s ON s\.id = v\.student_id WHERE EXTRACT\(YEAR FROM v\.due_date\) = \$1 AND EXTRACT\(MONTH FROM v\.due_date\) = \$2`

func newStatementService(t *testing.T) (*StatementService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewStatementService(repositories.NewVoucherRepository(mock)), mock
}

func TestGetStatement_ComputesTotalsAndBalance(t *testing.T) {
	service, mock := newStatementService(t)
	now := time.Now()
	dueDate := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getVoucherSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "reference", "student_id", "due_date", "paid_amount", "status", "created_at", "updated_at", "name",
		}).AddRow(int64(7), "VCH-6f1c2a9b", int64(42), dueDate, decimal.RequireFromString("2000.00"), models.StatusPartial, now, now, "Amina Yusuf"))
	mock.ExpectQuery(lineItemsSQL).
		WithArgs([]int64{int64(7)}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "voucher_id", "fee_type_id", "amount", "created_at", "name",
		}).
			AddRow(int64(1), int64(7), int64(1), decimal.RequireFromString("5000.00"), now, "tuition").
			AddRow(int64(2), int64(7), int64(2), decimal.RequireFromString("200.00"), now, "transport"))

	statement, err := service.GetStatement(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "VCH-6f1c2a9b", statement.Reference)
	assert.Equal(t, "Amina Yusuf", statement.StudentName)
	assert.Equal(t, "2024-03-31", statement.DueDate)
	assert.True(t, statement.Total.Equal(decimal.RequireFromString("5200.00")))
	assert.True(t, statement.Balance.Equal(decimal.RequireFromString("3200.00")))
	require.Len(t, statement.Lines, 2)
	assert.Equal(t, "tuition", statement.Lines[0].FeeTypeName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStatements_ValidatesPeriod(t *testing.T) {
	service, mock := newStatementService(t)

	_, err := service.ListStatements(context.Background(), nil, "2024", 3)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.ListStatements(context.Background(), nil, "2024-2025", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStatements_EmptyPeriod(t *testing.T) {
	service, mock := newStatementService(t)

	mock.ExpectQuery(listByPeriodSQL).
		WithArgs(2024, 3).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "reference", "student_id", "due_date", "paid_amount", "status", "created_at", "updated_at", "name",
		}))

	_, err := service.ListStatements(context.Background(), nil, "2024-2025", 3)
	assert.ErrorIs(t, err, apperrors.ErrNoMatchingVouchers)

	assert.NoError(t, mock.ExpectationsWereMet())
}
