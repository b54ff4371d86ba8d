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

const (
	classExistsSQL      = `SELECT EXISTS\(SELECT 1 FROM classes WHERE id = \$1\)`
	studentsByClassSQL  = `SELECT id, class_id, name FROM students WHERE class_id = \$1 ORDER BY name ASC`
	allStudentsSQL      = `SELECT id, class_id, name FROM students ORDER BY name ASC`
	monthlyStructsSQL   = `FROM fee_structures WHERE class_id = \$1 AND academic_year = \$2 AND frequency = \$3`
	voucherForPeriodSQL = `SELECT 1 FROM vouchers WHERE student_id = \$1`
	insertVoucherSQL    = `INSERT INTO vouchers \(reference, student_id, due_date, paid_amount, status\)`
	insertLineItemSQL   = `INSERT INTO voucher_line_items \(voucher_id, fee_type_id, amount\)`
)

func newGenerationService(t *testing.T) (*GenerationService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	service := NewGenerationService(
		mock,
		repositories.NewVoucherRepository(mock),
		repositories.NewFeeStructureRepository(mock),
		repositories.NewStudentRepository(mock),
	)
	return service, mock
}

func TestGenerateMonthly_ValidatesInputBeforeTouchingTheDatabase(t *testing.T) {
	service, mock := newGenerationService(t)

	_, err := service.GenerateMonthly(context.Background(), "2024", 3, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.GenerateMonthly(context.Background(), "2024-2026", 3, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.GenerateMonthly(context.Background(), "2024-2025", 13, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateMonthly_UnknownClassRejected(t *testing.T) {
	service, mock := newGenerationService(t)

	classID := int64(9)
	mock.ExpectQuery(classExistsSQL).
		WithArgs(classID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := service.GenerateMonthly(context.Background(), "2024-2025", 3, &classID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateMonthly_NoEligibleStudents(t *testing.T) {
	service, mock := newGenerationService(t)

	classID := int64(1)
	mock.ExpectQuery(classExistsSQL).
		WithArgs(classID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(studentsByClassSQL).
		WithArgs(classID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "class_id", "name"}))

	_, err := service.GenerateMonthly(context.Background(), "2024-2025", 3, &classID)
	assert.ErrorIs(t, err, apperrors.ErrNoEligibleStudents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The second run of a period must not duplicate vouchers: students that
// already have one are skipped and only the remainder is generated.
func TestGenerateMonthly_SkipsStudentsWithExistingVouchers(t *testing.T) {
	service, mock := newGenerationService(t)

	classID := int64(1)
	dueDate := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	tuition := decimal.RequireFromString("5000.00")
	now := time.Now()

	mock.ExpectQuery(classExistsSQL).
		WithArgs(classID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(studentsByClassSQL).
		WithArgs(classID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "class_id", "name"}).
			AddRow(int64(1), classID, "Amina Yusuf").
			AddRow(int64(2), classID, "Bilal Khan"))

	mock.ExpectBegin()
	mock.ExpectQuery(monthlyStructsSQL).
		WithArgs(classID, "2024-2025", models.FrequencyMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"id", "class_id", "fee_type_id", "amount", "frequency", "academic_year"}).
			AddRow(int64(11), classID, int64(1), tuition, models.FrequencyMonthly, "2024-2025"))

	// Amina already has a voucher for 2024-03
	mock.ExpectQuery(voucherForPeriodSQL).
		WithArgs(int64(1), 2024, 3).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	// Bilal does not, so a voucher plus line items is created for him
	mock.ExpectQuery(voucherForPeriodSQL).
		WithArgs(int64(2), 2024, 3).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(insertVoucherSQL).
		WithArgs(pgxmock.AnyArg(), int64(2), dueDate, decimal.Zero, models.StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))
	mock.ExpectQuery(insertLineItemSQL).
		WithArgs(int64(10), int64(1), tuition).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(100), now))
	mock.ExpectCommit()

	result, err := service.GenerateMonthly(context.Background(), "2024-2025", 3, &classID)
	require.NoError(t, err)

	assert.Equal(t, "generated 1 vouchers for 2024-03", result.Message)
	require.Len(t, result.Vouchers, 1)
	assert.Equal(t, int64(10), result.Vouchers[0].VoucherID)
	assert.Equal(t, int64(2), result.Vouchers[0].StudentID)
	assert.Equal(t, "Bilal Khan", result.Vouchers[0].StudentName)
	assert.Equal(t, "2024-03-31", result.Vouchers[0].DueDate)
	assert.True(t, result.Vouchers[0].Total.Equal(tuition))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Classes without monthly structures for the year produce no vouchers;
// the run completes cleanly instead of inserting empty vouchers.
func TestGenerateMonthly_ClassWithoutStructuresSkipped(t *testing.T) {
	service, mock := newGenerationService(t)

	mock.ExpectQuery(allStudentsSQL).
		WillReturnRows(pgxmock.NewRows([]string{"id", "class_id", "name"}).
			AddRow(int64(3), int64(2), "Carlos Mendez"))

	mock.ExpectBegin()
	mock.ExpectQuery(monthlyStructsSQL).
		WithArgs(int64(2), "2024-2025", models.FrequencyMonthly).
		WillReturnRows(pgxmock.NewRows([]string{"id", "class_id", "fee_type_id", "amount", "frequency", "academic_year"}))
	mock.ExpectCommit()

	result, err := service.GenerateMonthly(context.Background(), "2024-2025", 3, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Vouchers)
	assert.Equal(t, "generated 0 vouchers for 2024-03", result.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}
