package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/abimath/internal/app/models"
)

// FormLookup returns a submitted form value and whether the key was present
type FormLookup func(key string) (string, bool)

func formString(get FormLookup, key string) *string {
	v, ok := get(key)
	if !ok {
		return nil
	}
	return &v
}

// formInt64 reads an integer field; a blank value becomes 0
func formInt64(get FormLookup, key string) (*int64, error) {
	v, ok := get(key)
	if !ok {
		return nil, nil
	}
	var n int64
	if v = strings.TrimSpace(v); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		n = parsed
	}
	return &n, nil
}

// formGrid reads a grid submitted as JSON text; a blank value is ignored
func formGrid(get FormLookup, key string) (*models.ResultGrid, error) {
	v, ok := get(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var grid models.ResultGrid
	if err := json.Unmarshal([]byte(v), &grid); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of integer rows", key)
	}
	return &grid, nil
}

// BindForm fills the grids from form fields
func (g *GridUpdate) BindForm(get FormLookup) error {
	var err error
	if g.AddResults, err = formGrid(get, "addresults"); err != nil {
		return err
	}
	if g.SubResults, err = formGrid(get, "subresults"); err != nil {
		return err
	}
	if g.MulResults, err = formGrid(get, "mulresults"); err != nil {
		return err
	}
	g.DivResults, err = formGrid(get, "divresults")
	return err
}

// BindForm fills the request from form fields
func (r *CreateStudentRequest) BindForm(get FormLookup) error {
	r.Name = formString(get, "name")
	var err error
	r.ClassID, err = formInt64(get, "class_id")
	return err
}

// BindForm fills the request from form fields
func (r *UpdateStudentRequest) BindForm(get FormLookup) error {
	r.Name = formString(get, "name")
	var err error
	if r.ClassID, err = formInt64(get, "class_id"); err != nil {
		return err
	}
	return r.GridUpdate.BindForm(get)
}

// BindForm fills the request from form fields
func (r *CreateClassRequest) BindForm(get FormLookup) error {
	r.Name = formString(get, "name")
	return nil
}

// BindForm fills the request from form fields
func (r *UpdateClassRequest) BindForm(get FormLookup) error {
	r.Name = formString(get, "name")
	return r.GridUpdate.BindForm(get)
}
