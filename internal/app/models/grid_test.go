package models

import (
	"errors"
	"testing"
)

func TestNewZeroGrid(t *testing.T) {
	grid := NewZeroGrid()
	if err := grid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	for i, row := range grid {
		for j, v := range row {
			if v != 0 {
				t.Fatalf("grid[%d][%d] = %d, want 0", i, j, v)
			}
		}
	}
}

func TestResultGridValidate(t *testing.T) {
	short := NewZeroGrid()[:9]
	ragged := NewZeroGrid()
	ragged[4] = ragged[4][:9]
	wide := NewZeroGrid()
	wide[0] = append(wide[0], 1)

	tests := []struct {
		name string
		grid ResultGrid
		want error
	}{
		{"valid", NewZeroGrid(), nil},
		{"nil", nil, ErrGridRows},
		{"nine rows", short, ErrGridRows},
		{"short row", ragged, ErrGridColumns},
		{"long row", wide, ErrGridColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResultSetCloneIsDeep(t *testing.T) {
	orig := NewZeroResultSet()
	clone := orig.Clone()
	clone.MulResults[2][3] = 6

	if orig.MulResults[2][3] != 0 {
		t.Error("Clone() shares row storage with the original")
	}
}
