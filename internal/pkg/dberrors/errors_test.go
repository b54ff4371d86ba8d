package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError("23505", "fee_types_name_key")))
	assert.False(t, IsUniqueViolation(pgError("23503", "")))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	err := pgError("23505", "vouchers_student_id_due_date_key")
	assert.True(t, IsUniqueConstraintViolation(err, "vouchers_student_id_due_date_key"))
	assert.False(t, IsUniqueConstraintViolation(err, "fee_types_name_key"))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	err := pgError("23503", "voucher_line_items_fee_type_id_fkey")
	assert.True(t, IsForeignKeyViolation(err))
	assert.True(t, IsForeignKeyConstraintViolation(err, "voucher_line_items_fee_type_id_fkey"))
	assert.False(t, IsForeignKeyConstraintViolation(err, "voucher_line_items_voucher_id_fkey"))
}

func TestWrappedErrorsAreStillDetected(t *testing.T) {
	wrapped := fmt.Errorf("error creating voucher: %w", pgError("23505", "vouchers_student_id_due_date_key"))
	assert.True(t, IsUniqueConstraintViolation(wrapped, "vouchers_student_id_due_date_key"))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, IsCheckViolation(pgError("23514", "fee_structures_amount_check")))
	assert.False(t, IsCheckViolation(pgError("23505", "")))
}
