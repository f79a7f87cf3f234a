package dto

import "github.com/yigit/abimath/internal/app/models"

// ClassShort is the identity-only representation of a class
type ClassShort struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Year 3 Blue"`
}

// ClassLong is the identity fields plus all four result grids
type ClassLong struct {
	ClassShort
	models.ResultSet
}

// NewClassShort builds the short form of a class
func NewClassShort(c *models.Class) ClassShort {
	return ClassShort{ID: c.ID, Name: c.Name}
}

// NewClassLong builds the long form of a class
func NewClassLong(c *models.Class) ClassLong {
	return ClassLong{ClassShort: NewClassShort(c), ResultSet: c.ResultSet}
}

// CreateClassRequest is the body of POST /classes
type CreateClassRequest struct {
	Name *string `json:"name"`
}

// UpdateClassRequest is the body of PATCH /classes/{id}
type UpdateClassRequest struct {
	Name *string `json:"name"`
	GridUpdate
}

// ClassShortListResponse wraps a list of short-form classes
type ClassShortListResponse struct {
	Success bool         `json:"success" example:"true"`
	Classes []ClassShort `json:"classes"`
}

// ClassLongListResponse wraps a list of long-form classes
type ClassLongListResponse struct {
	Success bool        `json:"success" example:"true"`
	Classes []ClassLong `json:"classes"`
}

// NewClassShortList converts classes to the short-form response
func NewClassShortList(classes []*models.Class) ClassShortListResponse {
	out := make([]ClassShort, 0, len(classes))
	for _, c := range classes {
		out = append(out, NewClassShort(c))
	}
	return ClassShortListResponse{Success: true, Classes: out}
}

// NewClassLongList converts classes to the long-form response
func NewClassLongList(classes ...*models.Class) ClassLongListResponse {
	out := make([]ClassLong, 0, len(classes))
	for _, c := range classes {
		out = append(out, NewClassLong(c))
	}
	return ClassLongListResponse{Success: true, Classes: out}
}
