// Package export renders result grids as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in workbook order
const (
	SheetAddition       = "Addition"
	SheetSubtraction    = "Subtraction"
	SheetMultiplication = "Multiplication"
	SheetDivision       = "Division"
)

type sheet struct {
	name   string
	symbol string
	grid   models.ResultGrid
}

func sheetsOf(set models.ResultSet) []sheet {
	return []sheet{
		{SheetAddition, "+", set.AddResults},
		{SheetSubtraction, "-", set.SubResults},
		{SheetMultiplication, "×", set.MulResults},
		{SheetDivision, "÷", set.DivResults},
	}
}

// WriteResults writes one sheet per operation to w. Row and column headers
// hold the operands 1..10; cell (i, j) holds grid[i-1][j-1].
func WriteResults(w io.Writer, title string, set models.ResultSet) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheetsOf(set) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeGrid(f, s, title, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeGrid(f *excelize.File, s sheet, title string, headerStyle int) error {
	header := make([]interface{}, 0, models.GridSize+1)
	header = append(header, fmt.Sprintf("%s (%s)", title, s.symbol))
	for op := 1; op <= models.GridSize; op++ {
		header = append(header, op)
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", s.name, err)
	}

	for i := 0; i < models.GridSize; i++ {
		row := make([]interface{}, 0, models.GridSize+1)
		row = append(row, i+1)
		for j := 0; j < models.GridSize; j++ {
			if i < len(s.grid) && j < len(s.grid[i]) {
				row = append(row, s.grid[i][j])
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, s.name, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(models.GridSize+1, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(1, models.GridSize+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(s.name, "A1", bottom, headerStyle)
}
