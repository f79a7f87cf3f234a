package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/abimath/internal/app/models"
)

func seedClass(t *testing.T, store *MemoryStore, name string) int64 {
	t.Helper()
	var id int64
	err := store.Do(context.Background(), func(ctx context.Context, tx Tx) error {
		var err error
		id, err = tx.Classes().Create(ctx, &models.Class{Name: name, ResultSet: models.NewZeroResultSet()})
		return err
	})
	if err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}
	return id
}

func TestMemoryStore_RollbackOnError(t *testing.T) {
	store := NewMemoryStore()
	classID := seedClass(t, store, "Class A")

	boom := errors.New("boom")
	err := store.Do(context.Background(), func(ctx context.Context, tx Tx) error {
		if _, err := tx.Students().Create(ctx, &models.Student{ClassID: classID, Name: "Abi"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want %v", err, boom)
	}

	if _, students := store.Counts(); students != 0 {
		t.Errorf("student count after rollback = %d, want 0", students)
	}
}

func TestMemoryStore_Constraints(t *testing.T) {
	store := NewMemoryStore()
	classA := seedClass(t, store, "Class A")
	classB := seedClass(t, store, "Class B")
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func(ctx context.Context, tx Tx) error
		want error
	}{
		{
			name: "duplicate class name",
			fn: func(ctx context.Context, tx Tx) error {
				_, err := tx.Classes().Create(ctx, &models.Class{Name: "Class A"})
				return err
			},
			want: ErrDuplicate,
		},
		{
			name: "student in unknown class",
			fn: func(ctx context.Context, tx Tx) error {
				_, err := tx.Students().Create(ctx, &models.Student{ClassID: 99, Name: "Abi"})
				return err
			},
			want: ErrMissingClass,
		},
		{
			name: "same name in same class",
			fn: func(ctx context.Context, tx Tx) error {
				if _, err := tx.Students().Create(ctx, &models.Student{ClassID: classA, Name: "Abi"}); err != nil {
					return err
				}
				_, err := tx.Students().Create(ctx, &models.Student{ClassID: classA, Name: "Abi"})
				return err
			},
			want: ErrDuplicate,
		},
		{
			name: "same name in another class",
			fn: func(ctx context.Context, tx Tx) error {
				if _, err := tx.Students().Create(ctx, &models.Student{ClassID: classA, Name: "Abi"}); err != nil {
					return err
				}
				_, err := tx.Students().Create(ctx, &models.Student{ClassID: classB, Name: "Abi"})
				return err
			},
			want: nil,
		},
		{
			name: "missing student",
			fn: func(ctx context.Context, tx Tx) error {
				_, err := tx.Students().GetByID(ctx, 42)
				return err
			},
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Do(ctx, tt.fn)
			if !errors.Is(err, tt.want) {
				t.Errorf("Do() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	id := seedClass(t, store, "Class A")
	ctx := context.Background()

	_ = store.Do(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.Classes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		c.AddResults[0][0] = 7
		return nil
	})

	_ = store.Do(ctx, func(ctx context.Context, tx Tx) error {
		c, err := tx.Classes().GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if c.AddResults[0][0] != 0 {
			t.Error("mutating a returned class changed the stored copy")
		}
		return nil
	})
}
