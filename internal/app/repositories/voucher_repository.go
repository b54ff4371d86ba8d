package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
	"github.com/schoolbill/backend/internal/pkg/dberrors"
	"github.com/schoolbill/backend/internal/pkg/logger"
)

// Voucher error types
var (
	ErrVoucherNotFound      = apperrors.ErrVoucherNotFound
	ErrVoucherAlreadyExists = apperrors.ErrVoucherAlreadyExists
	ErrLineItemNotFound     = apperrors.ErrLineItemNotFound
)

// Named constraints from the vouchers schema
const (
	constraintVoucherPeriod   = "vouchers_student_id_due_date_key"
	constraintVoucherStudent  = "vouchers_student_id_fkey"
	constraintLineItemVoucher = "voucher_line_items_voucher_id_fkey"
	constraintLineItemFeeType = "voucher_line_items_fee_type_id_fkey"
)

// VoucherRepository handles database operations for vouchers and their
// line items. Methods taking a Querier participate in the transaction
// owned by the calling service.
type VoucherRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewVoucherRepository creates a new VoucherRepository
func NewVoucherRepository(pool db.Pool) *VoucherRepository {
	return &VoucherRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Pool exposes the underlying handle for transaction orchestration.
func (r *VoucherRepository) Pool() db.Pool {
	return r.db
}

// Create inserts a new voucher on the caller's Querier. A duplicate
// (student, due date) pair fails with the period conflict error; the
// caller decides whether that aborts its batch.
func (r *VoucherRepository) Create(ctx context.Context, q Querier, voucher *models.Voucher) error {
	query := `
		INSERT INTO vouchers (reference, student_id, due_date, paid_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		voucher.Reference,
		voucher.StudentID,
		voucher.DueDate,
		voucher.PaidAmount,
		voucher.Status,
	).Scan(&voucher.ID, &voucher.CreatedAt, &voucher.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueConstraintViolation(err, constraintVoucherPeriod) {
			return ErrVoucherAlreadyExists
		}
		if dberrors.IsForeignKeyConstraintViolation(err, constraintVoucherStudent) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", voucher.StudentID).Msg("Error executing create voucher query")
		return fmt.Errorf("error creating voucher: %w", err)
	}

	return nil
}

// GetByID retrieves a voucher with the owning student's display name and
// its line items joined with fee type names.
func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*models.Voucher, error) {
	query := `
		SELECT v.id, v.reference, v.student_id, v.due_date, v.paid_amount, v.status,
		       v.created_at, v.updated_at, s.name
		FROM vouchers v
		JOIN students s ON s.id = v.student_id
		WHERE v.id = $1
	`

	var voucher models.Voucher
	err := r.db.QueryRow(ctx, query, id).Scan(
		&voucher.ID,
		&voucher.Reference,
		&voucher.StudentID,
		&voucher.DueDate,
		&voucher.PaidAmount,
		&voucher.Status,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
		&voucher.StudentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, fmt.Errorf("error getting voucher by ID: %w", err)
	}

	lineItems, err := r.loadLineItems(ctx, r.db, []int64{voucher.ID})
	if err != nil {
		return nil, err
	}
	voucher.LineItems = lineItems[voucher.ID]

	return &voucher, nil
}

// loadLineItems fetches line items for a set of vouchers in one query,
// keyed by voucher ID.
func (r *VoucherRepository) loadLineItems(ctx context.Context, q Querier, voucherIDs []int64) (map[int64][]models.VoucherLineItem, error) {
	query := `
		SELECT li.id, li.voucher_id, li.fee_type_id, li.amount, li.created_at, ft.name
		FROM voucher_line_items li
		JOIN fee_types ft ON ft.id = li.fee_type_id
		WHERE li.voucher_id = ANY($1)
		ORDER BY li.id ASC
	`

	rows, err := q.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying voucher line items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]models.VoucherLineItem)
	for rows.Next() {
		var li models.VoucherLineItem
		if err := rows.Scan(&li.ID, &li.VoucherID, &li.FeeTypeID, &li.Amount, &li.CreatedAt, &li.FeeTypeName); err != nil {
			return nil, fmt.Errorf("error scanning line item row: %w", err)
		}
		items[li.VoucherID] = append(items[li.VoucherID], li)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ListByStudent retrieves a student's vouchers ordered by due date
// descending, with the total count for pagination metadata.
func (r *VoucherRepository) ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.Voucher, int64, error) {
	offset := (page - 1) * pageSize

	query := squirrel.Select("v.id", "v.reference", "v.student_id", "v.due_date", "v.paid_amount", "v.status",
		"v.created_at", "v.updated_at", "s.name").
		Column("COUNT(*) OVER()").
		From("vouchers v").
		Join("students s ON s.id = v.student_id").
		Where("v.student_id = ?", studentID).
		OrderBy("v.due_date DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var vouchers []models.Voucher
	var total int64

	for rows.Next() {
		var voucher models.Voucher
		err := rows.Scan(
			&voucher.ID,
			&voucher.Reference,
			&voucher.StudentID,
			&voucher.DueDate,
			&voucher.PaidAmount,
			&voucher.Status,
			&voucher.CreatedAt,
			&voucher.UpdatedAt,
			&voucher.StudentName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(vouchers) == 0 {
		return vouchers, total, nil
	}

	ids := make([]int64, 0, len(vouchers))
	for i := range vouchers {
		ids = append(ids, vouchers[i].ID)
	}
	items, err := r.loadLineItems(ctx, r.db, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range vouchers {
		vouchers[i].LineItems = items[vouchers[i].ID]
	}

	return vouchers, total, nil
}

// ListByPeriod retrieves vouchers whose due date falls in the given
// month and calendar year, optionally restricted to one class, with
// student names and line items. Used by the statement projection.
func (r *VoucherRepository) ListByPeriod(ctx context.Context, classID *int64, year int, month int) ([]models.Voucher, error) {
	query := squirrel.Select("v.id", "v.reference", "v.student_id", "v.due_date", "v.paid_amount", "v.status",
		"v.created_at", "v.updated_at", "s.name").
		From("vouchers v").
		Join("students s ON s.id = v.student_id").
		Where("EXTRACT(YEAR FROM v.due_date) = ?", year).
		Where("EXTRACT(MONTH FROM v.due_date) = ?", month).
		OrderBy("s.name ASC", "v.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if classID != nil {
		query = query.Where("s.class_id = ?", *classID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var vouchers []models.Voucher
	for rows.Next() {
		var voucher models.Voucher
		err := rows.Scan(
			&voucher.ID,
			&voucher.Reference,
			&voucher.StudentID,
			&voucher.DueDate,
			&voucher.PaidAmount,
			&voucher.Status,
			&voucher.CreatedAt,
			&voucher.UpdatedAt,
			&voucher.StudentName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(vouchers) == 0 {
		return vouchers, nil
	}

	ids := make([]int64, 0, len(vouchers))
	for i := range vouchers {
		ids = append(ids, vouchers[i].ID)
	}
	items, err := r.loadLineItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range vouchers {
		vouchers[i].LineItems = items[vouchers[i].ID]
	}

	return vouchers, nil
}

// ExistsForPeriod reports whether the student already has a voucher due
// in the given month and calendar year. This is the idempotency key for
// bulk generation.
func (r *VoucherRepository) ExistsForPeriod(ctx context.Context, q Querier, studentID int64, year int, month int) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vouchers
			WHERE student_id = $1
			  AND EXTRACT(YEAR FROM due_date) = $2
			  AND EXTRACT(MONTH FROM due_date) = $3
		)`, studentID, year, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking voucher existence: %w", err)
	}

	return exists, nil
}

// Delete deletes a voucher by ID; line items cascade at the schema level.
func (r *VoucherRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting voucher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}

	return nil
}

// LockPaidAmount reads the voucher's paid amount under a row lock so a
// concurrent payment cannot observe the same stale value. Must run on a
// transaction Querier.
func (r *VoucherRepository) LockPaidAmount(ctx context.Context, q Querier, voucherID int64) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := q.QueryRow(ctx, `SELECT paid_amount FROM vouchers WHERE id = $1 FOR UPDATE`, voucherID).Scan(&paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrVoucherNotFound
		}
		return decimal.Zero, fmt.Errorf("error locking voucher row: %w", err)
	}

	return paid, nil
}

// SumLineItems computes the voucher total from its line items.
func (r *VoucherRepository) SumLineItems(ctx context.Context, q Querier, voucherID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM voucher_line_items
		WHERE voucher_id = $1`, voucherID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing line items: %w", err)
	}

	return total, nil
}

// UpdatePayment persists a new paid amount and derived status.
func (r *VoucherRepository) UpdatePayment(ctx context.Context, q Querier, voucherID int64, paid decimal.Decimal, status models.VoucherStatus) error {
	cmdTag, err := q.Exec(ctx, `
		UPDATE vouchers
		SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3`, paid, status, voucherID)
	if err != nil {
		return fmt.Errorf("error updating voucher payment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}

	return nil
}

// UpdateStatus persists a rederived status after a line-item mutation.
func (r *VoucherRepository) UpdateStatus(ctx context.Context, q Querier, voucherID int64, status models.VoucherStatus) error {
	cmdTag, err := q.Exec(ctx, `
		UPDATE vouchers
		SET status = $1, updated_at = NOW()
		WHERE id = $2`, status, voucherID)
	if err != nil {
		return fmt.Errorf("error updating voucher status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}

	return nil
}

// AddLineItem attaches a charge to a voucher on the caller's Querier.
func (r *VoucherRepository) AddLineItem(ctx context.Context, q Querier, item *models.VoucherLineItem) error {
	query := `
		INSERT INTO voucher_line_items (voucher_id, fee_type_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, item.VoucherID, item.FeeTypeID, item.Amount).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyConstraintViolation(err, constraintLineItemVoucher) {
			return ErrVoucherNotFound
		}
		if dberrors.IsForeignKeyConstraintViolation(err, constraintLineItemFeeType) {
			return apperrors.ErrInvalidReference
		}
		return fmt.Errorf("error creating voucher line item: %w", err)
	}

	return nil
}

// GetLineItem retrieves a line item by ID on the caller's Querier.
func (r *VoucherRepository) GetLineItem(ctx context.Context, q Querier, id int64) (*models.VoucherLineItem, error) {
	query := `
		SELECT id, voucher_id, fee_type_id, amount, created_at
		FROM voucher_line_items
		WHERE id = $1
	`

	var item models.VoucherLineItem
	err := q.QueryRow(ctx, query, id).Scan(&item.ID, &item.VoucherID, &item.FeeTypeID, &item.Amount, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineItemNotFound
		}
		return nil, fmt.Errorf("error getting line item by ID: %w", err)
	}

	return &item, nil
}

// UpdateLineItem changes a line item's fee type and amount.
func (r *VoucherRepository) UpdateLineItem(ctx context.Context, q Querier, id int64, feeTypeID int64, amount decimal.Decimal) error {
	cmdTag, err := q.Exec(ctx, `
		UPDATE voucher_line_items
		SET fee_type_id = $1, amount = $2
		WHERE id = $3`, feeTypeID, amount, id)
	if err != nil {
		if dberrors.IsForeignKeyConstraintViolation(err, constraintLineItemFeeType) {
			return apperrors.ErrInvalidReference
		}
		return fmt.Errorf("error updating line item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrLineItemNotFound
	}

	return nil
}

// DeleteLineItem removes a line item.
func (r *VoucherRepository) DeleteLineItem(ctx context.Context, q Querier, id int64) error {
	cmdTag, err := q.Exec(ctx, `DELETE FROM voucher_line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting line item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrLineItemNotFound
	}

	return nil
}
