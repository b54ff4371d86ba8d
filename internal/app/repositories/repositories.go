package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

// Shared repository error alias; services and the error middleware match
// on the apperrors sentinels.
var ErrNotFound = apperrors.ErrResourceNotFound

// Querier is the subset of db.Pool and pgx.Tx that repository methods
// execute against. Methods that must participate in a caller-owned
// transaction take a Querier explicitly; pgx.Tx satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	FeeTypeRepository      *FeeTypeRepository
	FeeStructureRepository *FeeStructureRepository
	VoucherRepository      *VoucherRepository
	StudentRepository      *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool) *Repositories {
	return &Repositories{
		FeeTypeRepository:      NewFeeTypeRepository(pool),
		FeeStructureRepository: NewFeeStructureRepository(pool),
		VoucherRepository:      NewVoucherRepository(pool),
		StudentRepository:      NewStudentRepository(pool),
	}
}
