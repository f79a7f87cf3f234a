package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/abimath/internal/app/models"
)

// Shared repository errors
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingClass is returned when a student references an unknown class.
	ErrMissingClass = errors.New("referenced class does not exist")
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ClassStore persists classes
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetByName(ctx context.Context, name string) (*models.Class, error)
	List(ctx context.Context) ([]*models.Class, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore persists students
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	FindByClassAndName(ctx context.Context, classID int64, name string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	ListByClass(ctx context.Context, classID int64) ([]*models.Student, error)
	CountByClass(ctx context.Context, classID int64) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// Tx exposes the stores bound to one transaction
type Tx interface {
	Classes() ClassStore
	Students() StudentStore
}

// UnitOfWork runs fn in a single transaction. It commits when fn returns nil
// and rolls back on error or panic, so every exit path releases the work.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
