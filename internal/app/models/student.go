package models

// Student is a pupil belonging to exactly one class.
type Student struct {
	ID      int64  `json:"id" db:"id" example:"1"`
	ClassID int64  `json:"class_id" db:"class_id" example:"1"`
	Name    string `json:"name" db:"name" example:"Abi"`
	ResultSet
}
