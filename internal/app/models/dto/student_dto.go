package dto

import "github.com/yigit/abimath/internal/app/models"

// StudentShort is the identity-only representation of a student
type StudentShort struct {
	ID      int64  `json:"id" example:"1"`
	ClassID int64  `json:"class_id" example:"1"`
	Name    string `json:"name" example:"Abi"`
}

// StudentLong is the identity fields plus all four result grids
type StudentLong struct {
	StudentShort
	models.ResultSet
}

// NewStudentShort builds the short form of a student
func NewStudentShort(s *models.Student) StudentShort {
	return StudentShort{ID: s.ID, ClassID: s.ClassID, Name: s.Name}
}

// NewStudentLong builds the long form of a student
func NewStudentLong(s *models.Student) StudentLong {
	return StudentLong{StudentShort: NewStudentShort(s), ResultSet: s.ResultSet}
}

// CreateStudentRequest is the body of POST /students. Fields are pointers so
// that a missing field can be told apart from a blank one.
type CreateStudentRequest struct {
	Name    *string `json:"name"`
	ClassID *int64  `json:"class_id"`
}

// UpdateStudentRequest is the body of PATCH /students/{id}; only the fields
// present are applied.
type UpdateStudentRequest struct {
	ClassID *int64  `json:"class_id"`
	Name    *string `json:"name"`
	GridUpdate
}

// StudentShortListResponse wraps a list of short-form students
type StudentShortListResponse struct {
	Success  bool           `json:"success" example:"true"`
	Students []StudentShort `json:"students"`
}

// StudentLongListResponse wraps a list of long-form students
type StudentLongListResponse struct {
	Success  bool          `json:"success" example:"true"`
	Students []StudentLong `json:"students"`
}

// NewStudentShortList converts students to the short-form response
func NewStudentShortList(students []*models.Student) StudentShortListResponse {
	out := make([]StudentShort, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentShort(s))
	}
	return StudentShortListResponse{Success: true, Students: out}
}

// NewStudentLongList converts students to the long-form response
func NewStudentLongList(students ...*models.Student) StudentLongListResponse {
	out := make([]StudentLong, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentLong(s))
	}
	return StudentLongListResponse{Success: true, Students: out}
}
