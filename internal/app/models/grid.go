package models

import "errors"

// GridSize is the number of operands on each axis of a result grid.
const GridSize = 10

// Grid shape errors
var (
	ErrGridRows    = errors.New("result grid must have 10 rows")
	ErrGridColumns = errors.New("each row of a result grid must have 10 columns")
)

// ResultGrid holds drill outcomes indexed by [first operand-1][second operand-1],
// e.g. AddResults[2][4] is the result recorded for 3+5.
type ResultGrid [][]int

// NewZeroGrid returns a GridSize×GridSize grid of zeros.
func NewZeroGrid() ResultGrid {
	grid := make(ResultGrid, GridSize)
	for i := range grid {
		grid[i] = make([]int, GridSize)
	}
	return grid
}

// Validate checks the grid is exactly GridSize×GridSize.
func (g ResultGrid) Validate() error {
	if len(g) != GridSize {
		return ErrGridRows
	}
	for _, row := range g {
		if len(row) != GridSize {
			return ErrGridColumns
		}
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g ResultGrid) Clone() ResultGrid {
	if g == nil {
		return nil
	}
	out := make(ResultGrid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// ResultSet groups the four grids carried by classes and students.
type ResultSet struct {
	AddResults ResultGrid `json:"addresults"`
	SubResults ResultGrid `json:"subresults"`
	MulResults ResultGrid `json:"mulresults"`
	DivResults ResultGrid `json:"divresults"`
}

// NewZeroResultSet returns a ResultSet with all four grids zeroed.
func NewZeroResultSet() ResultSet {
	return ResultSet{
		AddResults: NewZeroGrid(),
		SubResults: NewZeroGrid(),
		MulResults: NewZeroGrid(),
		DivResults: NewZeroGrid(),
	}
}

// Clone returns a deep copy of the set.
func (r ResultSet) Clone() ResultSet {
	return ResultSet{
		AddResults: r.AddResults.Clone(),
		SubResults: r.SubResults.Clone(),
		MulResults: r.MulResults.Clone(),
		DivResults: r.DivResults.Clone(),
	}
}
