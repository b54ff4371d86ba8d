package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

const (
	getLineItemSQL    = `SELECT id, voucher_id, fee_type_id, amount, created_at FROM voucher_line_items WHERE id = \$1`
	deleteLineItemSQL = `DELETE FROM voucher_line_items WHERE id = \$1`
	updateStatusSQL   = `UPDATE vouchers SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`
	deleteVoucherSQL  = `DELETE FROM vouchers WHERE id = \$1`
	getStudentByIDSQL = `SELECT id, class_id, name FROM students WHERE id = \$1`
)

func newVoucherService(t *testing.T) (*VoucherService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewVoucherService(mock, repositories.NewVoucherRepository(mock), repositories.NewStudentRepository(mock)), mock
}

func TestNewVoucherReference(t *testing.T) {
	ref := NewVoucherReference()
	assert.True(t, strings.HasPrefix(ref, "VCH-"))
	assert.Len(t, ref, len("VCH-")+8)
	assert.NotEqual(t, ref, NewVoucherReference())
}

func TestCreateVoucher_RejectsMalformedDueDate(t *testing.T) {
	service, mock := newVoucherService(t)

	for _, due := range []string{"", "31-03-2024", "2024-13-01", "not a date"} {
		_, err := service.CreateVoucher(context.Background(), 42, due)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "due date %q should be rejected", due)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVoucher_Success(t *testing.T) {
	service, mock := newVoucherService(t)
	now := time.Now()

	mock.ExpectQuery(insertVoucherSQL).
		WithArgs(pgxmock.AnyArg(), int64(42), time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), decimal.Zero, models.StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	voucher, err := service.CreateVoucher(context.Background(), 42, "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, int64(7), voucher.ID)
	assert.Equal(t, models.StatusPending, voucher.Status)
	assert.True(t, voucher.PaidAmount.IsZero())
	assert.True(t, strings.HasPrefix(voucher.Reference, "VCH-"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVoucher_DuplicatePeriodConflict(t *testing.T) {
	service, mock := newVoucherService(t)

	mock.ExpectQuery(insertVoucherSQL).
		WithArgs(pgxmock.AnyArg(), int64(42), time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), decimal.Zero, models.StatusPending).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "vouchers_student_id_due_date_key"})

	_, err := service.CreateVoucher(context.Background(), 42, "2024-03-31")
	assert.ErrorIs(t, err, apperrors.ErrVoucherAlreadyExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Adding a line item and rederiving the voucher status happen inside a
// single transaction, under the voucher's row lock.
func TestAddLineItem_RederivesStatusInOneTransaction(t *testing.T) {
	service, mock := newVoucherService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("5000.00")))
	mock.ExpectQuery(insertLineItemSQL).
		WithArgs(int64(7), int64(2), decimal.RequireFromString("200.00")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5200.00")))
	// fully-paid voucher drops back to partial once the total grows
	mock.ExpectExec(updateStatusSQL).
		WithArgs(models.StatusPartial, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	item := &models.VoucherLineItem{VoucherID: 7, FeeTypeID: 2, Amount: decimal.RequireFromString("200.00")}
	err := service.AddLineItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLineItem_UnknownFeeTypeRejected(t *testing.T) {
	service, mock := newVoucherService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.Zero))
	mock.ExpectQuery(insertLineItemSQL).
		WithArgs(int64(7), int64(999), decimal.RequireFromString("200.00")).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "voucher_line_items_fee_type_id_fkey"})
	mock.ExpectRollback()

	item := &models.VoucherLineItem{VoucherID: 7, FeeTypeID: 999, Amount: decimal.RequireFromString("200.00")}
	err := service.AddLineItem(context.Background(), item)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Removing the last unpaid charge can flip a partially-paid voucher all
// the way to paid; the rederivation must use the surviving total.
func TestDeleteLineItem_RederivesStatus(t *testing.T) {
	service, mock := newVoucherService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(getLineItemSQL).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "voucher_id", "fee_type_id", "amount", "created_at"}).
			AddRow(int64(3), int64(7), int64(2), decimal.RequireFromString("200.00"), now))
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("5000.00")))
	mock.ExpectExec(deleteLineItemSQL).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5000.00")))
	mock.ExpectExec(updateStatusSQL).
		WithArgs(models.StatusPaid, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := service.DeleteLineItem(context.Background(), 3)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLineItem_MissingItem(t *testing.T) {
	service, mock := newVoucherService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(getLineItemSQL).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := service.UpdateLineItem(context.Background(), 99, 1, decimal.RequireFromString("100.00"))
	assert.ErrorIs(t, err, apperrors.ErrLineItemNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVouchers_UnknownStudent(t *testing.T) {
	service, mock := newVoucherService(t)

	mock.ExpectQuery(getStudentByIDSQL).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, _, err := service.ListVouchers(context.Background(), 99, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVoucher_NotFound(t *testing.T) {
	service, mock := newVoucherService(t)

	mock.ExpectExec(deleteVoucherSQL).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := service.DeleteVoucher(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrVoucherNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
