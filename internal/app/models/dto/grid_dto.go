package dto

import "github.com/yigit/abimath/internal/app/models"

// GridUpdate carries the optional result grids of a PATCH body.
type GridUpdate struct {
	AddResults *models.ResultGrid `json:"addresults" validate:"omitempty,len=10,dive,len=10"`
	SubResults *models.ResultGrid `json:"subresults" validate:"omitempty,len=10,dive,len=10"`
	MulResults *models.ResultGrid `json:"mulresults" validate:"omitempty,len=10,dive,len=10"`
	DivResults *models.ResultGrid `json:"divresults" validate:"omitempty,len=10,dive,len=10"`
}

// Empty reports whether no grid was supplied.
func (g GridUpdate) Empty() bool {
	return g.AddResults == nil && g.SubResults == nil && g.MulResults == nil && g.DivResults == nil
}

// Named returns the supplied grids keyed by their JSON name.
func (g GridUpdate) Named() map[string]models.ResultGrid {
	out := make(map[string]models.ResultGrid, 4)
	if g.AddResults != nil {
		out["addresults"] = *g.AddResults
	}
	if g.SubResults != nil {
		out["subresults"] = *g.SubResults
	}
	if g.MulResults != nil {
		out["mulresults"] = *g.MulResults
	}
	if g.DivResults != nil {
		out["divresults"] = *g.DivResults
	}
	return out
}

// ApplyTo overwrites the grids of set that were supplied.
func (g GridUpdate) ApplyTo(set *models.ResultSet) {
	if g.AddResults != nil {
		set.AddResults = g.AddResults.Clone()
	}
	if g.SubResults != nil {
		set.SubResults = g.SubResults.Clone()
	}
	if g.MulResults != nil {
		set.MulResults = g.MulResults.Clone()
	}
	if g.DivResults != nil {
		set.DivResults = g.DivResults.Clone()
	}
}
