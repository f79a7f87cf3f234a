package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/abimath/internal/pkg/apperrors"
)

// fakeTx implements only the pgx.Tx methods runInTx calls
type fakeTx struct {
	pgx.Tx
	rollbackErr error
	commitErr   error
	rolledBack  bool
	committed   bool
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return t.rollbackErr
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	err := runInTx(context.Background(), &fakeBeginner{tx: tx}, time.Second, func(context.Context, pgx.Tx) error {
		return nil
	})
	if err != nil {
		t.Fatalf("runInTx() error = %v", err)
	}
	if !tx.committed || tx.rolledBack {
		t.Fatalf("committed = %v, rolledBack = %v", tx.committed, tx.rolledBack)
	}
}

func TestRunInTx_RollbackKeepsDomainError(t *testing.T) {
	notFound := apperrors.NewNotFoundError("id not found in the database.")
	connLost := errors.New("conn closed")

	tests := []struct {
		name        string
		rollbackErr error
	}{
		{"rollback succeeds", nil},
		{"rollback fails", connLost},
		{"tx already closed", pgx.ErrTxClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{rollbackErr: tt.rollbackErr}
			err := runInTx(context.Background(), &fakeBeginner{tx: tx}, time.Second, func(context.Context, pgx.Tx) error {
				return notFound
			})

			if !tx.rolledBack || tx.committed {
				t.Fatalf("rolledBack = %v, committed = %v", tx.rolledBack, tx.committed)
			}
			var ce *apperrors.CustomError
			if !errors.As(err, &ce) || !errors.Is(err, apperrors.ErrResourceNotFound) {
				t.Fatalf("domain error lost: %v", err)
			}
			if tt.rollbackErr == connLost && !errors.Is(err, connLost) {
				t.Fatalf("rollback error lost: %v", err)
			}
		})
	}
}

func TestRunInTx_AppliesTimeout(t *testing.T) {
	var deadline time.Time
	err := runInTx(context.Background(), &fakeBeginner{tx: &fakeTx{}}, time.Minute, func(ctx context.Context, _ pgx.Tx) error {
		deadline, _ = ctx.Deadline()
		return nil
	})
	if err != nil {
		t.Fatalf("runInTx() error = %v", err)
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > time.Minute {
		t.Fatalf("transaction deadline in %v, want within 1m", remaining)
	}

	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	want, _ := parent.Deadline()
	_ = runInTx(parent, &fakeBeginner{tx: &fakeTx{}}, time.Minute, func(ctx context.Context, _ pgx.Tx) error {
		deadline, _ = ctx.Deadline()
		return nil
	})
	if !deadline.Equal(want) {
		t.Fatalf("caller deadline replaced: got %v, want %v", deadline, want)
	}
}

func TestRunInTx_RollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	defer func() {
		if recover() == nil {
			t.Fatal("expected the panic to propagate")
		}
		if !tx.rolledBack {
			t.Fatal("expected a rollback before the panic propagated")
		}
	}()
	_ = runInTx(context.Background(), &fakeBeginner{tx: tx}, time.Second, func(context.Context, pgx.Tx) error {
		panic("boom")
	})
}

func TestRunInTx_BeginAndCommitFailures(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	err := runInTx(context.Background(), &fakeBeginner{err: beginErr}, time.Second, func(context.Context, pgx.Tx) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	if !errors.Is(err, beginErr) {
		t.Fatalf("error = %v, want begin error", err)
	}

	commitErr := errors.New("serialization failure")
	err = runInTx(context.Background(), &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}, time.Second, func(context.Context, pgx.Tx) error {
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("error = %v, want commit error", err)
	}
}
