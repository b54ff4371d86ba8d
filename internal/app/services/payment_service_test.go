package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

const (
	lockPaidAmountSQL = `SELECT paid_amount FROM vouchers WHERE id = \$1 FOR UPDATE`
	sumLineItemsSQL   = `SELECT COALESCE\(SUM\(amount\), 0\) FROM voucher_line_items WHERE voucher_id = \$1`
	updatePaymentSQL  = `UPDATE vouchers SET paid_amount = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$3`
	getVoucherSQL     = `SELECT v\.id, v\.reference, .+ FROM vouchers v JOIN students s ON s\.id = v\.student_id WHERE v\.id = \$1`
	lineItemsSQL      = `FROM voucher_line_items li JOIN fee_types ft ON ft\.id = li\.fee_type_id`
)

func newPaymentService(t *testing.T) (*PaymentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPaymentService(mock, repositories.NewVoucherRepository(mock)), mock
}

// expectVoucherReload covers the post-commit read that returns the
// voucher in its new state.
func expectVoucherReload(mock pgxmock.PgxPoolIface, voucherID int64, paid string, status models.VoucherStatus) {
	now := time.Now()
	mock.ExpectQuery(getVoucherSQL).
		WithArgs(voucherID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "reference", "student_id", "due_date", "paid_amount", "status", "created_at", "updated_at", "name",
		}).AddRow(voucherID, "VCH-6f1c2a9b", int64(42), now, decimal.RequireFromString(paid), status, now, now, "Amina Yusuf"))

	mock.ExpectQuery(lineItemsSQL).
		WithArgs([]int64{voucherID}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "voucher_id", "fee_type_id", "amount", "created_at", "name",
		}).
			AddRow(int64(1), voucherID, int64(1), decimal.RequireFromString("5000.00"), now, "tuition").
			AddRow(int64(2), voucherID, int64(2), decimal.RequireFromString("200.00"), now, "transport"))
}

func TestApplyPayment_RejectsNonPositiveAmounts(t *testing.T) {
	service, mock := newPaymentService(t)

	for _, amount := range []string{"0", "-50.00"} {
		_, err := service.ApplyPayment(context.Background(), 7, decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPayment_PartialPayment(t *testing.T) {
	service, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("0.00")))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5200.00")))
	mock.ExpectExec(updatePaymentSQL).
		WithArgs(decimal.RequireFromString("2000.00"), models.StatusPartial, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectVoucherReload(mock, 7, "2000.00", models.StatusPartial)

	voucher, err := service.ApplyPayment(context.Background(), 7, decimal.RequireFromString("2000.00"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, voucher.Status)
	assert.True(t, voucher.PaidAmount.Equal(decimal.RequireFromString("2000.00")))
	assert.Len(t, voucher.LineItems, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPayment_ExactPaymentMarksPaid(t *testing.T) {
	service, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("2000.00")))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5200.00")))
	mock.ExpectExec(updatePaymentSQL).
		WithArgs(decimal.RequireFromString("5200.00"), models.StatusPaid, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectVoucherReload(mock, 7, "5200.00", models.StatusPaid)

	voucher, err := service.ApplyPayment(context.Background(), 7, decimal.RequireFromString("3200.00"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, voucher.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	service, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("3000.00")))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5000.00")))
	mock.ExpectRollback()

	_, err := service.ApplyPayment(context.Background(), 7, decimal.RequireFromString("2000.01"))
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A payment landing exactly on the remaining balance is not an
// overpayment; the comparison is exact, with no tolerance band.
func TestApplyPayment_ExactRemainingBalanceAccepted(t *testing.T) {
	service, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"paid_amount"}).AddRow(decimal.RequireFromString("4999.99")))
	mock.ExpectQuery(sumLineItemsSQL).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("5000.00")))
	mock.ExpectExec(updatePaymentSQL).
		WithArgs(decimal.RequireFromString("5000.00"), models.StatusPaid, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectVoucherReload(mock, 7, "5000.00", models.StatusPaid)

	_, err := service.ApplyPayment(context.Background(), 7, decimal.RequireFromString("0.01"))
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPayment_VoucherNotFound(t *testing.T) {
	service, mock := newPaymentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockPaidAmountSQL).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := service.ApplyPayment(context.Background(), 99, decimal.RequireFromString("100.00"))
	assert.True(t, errors.Is(err, apperrors.ErrVoucherNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
