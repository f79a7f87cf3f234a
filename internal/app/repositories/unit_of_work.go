package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/abimath/internal/db"
)

type pgTx struct {
	classes  *ClassRepository
	students *StudentRepository
}

func (t *pgTx) Classes() ClassStore   { return t.classes }
func (t *pgTx) Students() StudentStore { return t.students }

// PostgresUnitOfWork opens one pgx transaction per call to Do
type PostgresUnitOfWork struct {
	db *db.PostgresDB
}

// NewPostgresUnitOfWork creates a unit of work backed by the pool
func NewPostgresUnitOfWork(database *db.PostgresDB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: database}
}

// Do implements UnitOfWork
func (u *PostgresUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return u.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &pgTx{
			classes:  NewClassRepository(tx),
			students: NewStudentRepository(tx),
		})
	})
}
