package export

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/abimath/internal/app/models"
)

func TestWriteResults(t *testing.T) {
	set := models.NewZeroResultSet()
	set.MulResults[2][4] = 15
	set.DivResults[9][9] = 1

	var buf bytes.Buffer
	if err := WriteResults(&buf, "Class A", set); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetAddition, SheetSubtraction, SheetMultiplication, SheetDivision}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{SheetAddition, "A1", "Class A (+)"},
		{SheetAddition, "K1", "10"},
		{SheetAddition, "A11", "10"},
		{SheetAddition, "B2", "0"},
		{SheetMultiplication, "F4", "15"},
		{SheetDivision, "K11", "1"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s) error = %v", tt.sheet, tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}
}
