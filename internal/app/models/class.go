package models

// Class is a school class; it owns zero or more students.
type Class struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"classname" example:"Year 3 Blue"`
	ResultSet
}
