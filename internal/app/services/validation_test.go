package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yigit/abimath/internal/pkg/apperrors"
)

func TestFinish(t *testing.T) {
	notFound := apperrors.NewNotFoundError("id not found in the database.")
	storeErr := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		wantCat  error
		wantText string
	}{
		{"domain error", notFound, apperrors.ErrResourceNotFound, "id not found in the database."},
		{"domain error with failed rollback", errors.Join(notFound, fmt.Errorf("rollback: %w", storeErr)), apperrors.ErrResourceNotFound, "id not found in the database."},
		{"store error", storeErr, apperrors.ErrPersistence, "Unexpected error updating the database."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := finish(tt.err, "update_student", "Unexpected error updating the database.")
			if !errors.Is(err, tt.wantCat) {
				t.Fatalf("finish() = %v, want category %v", err, tt.wantCat)
			}
			if got := apperrors.Message(err, ""); got != tt.wantText {
				t.Fatalf("message = %q, want %q", got, tt.wantText)
			}
		})
	}

	if finish(nil, "noop", "unused") != nil {
		t.Fatal("finish(nil) must be nil")
	}
}
