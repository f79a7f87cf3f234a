package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/app/repositories"
	"github.com/yigit/abimath/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func newFixture(t *testing.T) (*repositories.MemoryStore, ClassService, StudentService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return store, NewClassService(store), NewStudentService(store)
}

func mustCreateClass(t *testing.T, svc ClassService, name string) *models.Class {
	t.Helper()
	class, err := svc.CreateClass(context.Background(), &dto.CreateClassRequest{Name: strPtr(name)})
	if err != nil {
		t.Fatalf("CreateClass(%q) error = %v", name, err)
	}
	return class
}

func TestCreateStudent_Validation(t *testing.T) {
	store, classes, students := newFixture(t)
	class := mustCreateClass(t, classes, "Class A")

	tests := []struct {
		name    string
		req     dto.CreateStudentRequest
		message string
	}{
		{"both missing", dto.CreateStudentRequest{}, "Missing input field(s). (name and class_id are required.)"},
		{"name missing", dto.CreateStudentRequest{ClassID: intPtr(class.ID)}, "Missing input field(s). (name is required.)"},
		{"class missing", dto.CreateStudentRequest{Name: strPtr("Abi")}, "Missing input field(s). (class_id is required.)"},
		{"blank name", dto.CreateStudentRequest{Name: strPtr("  "), ClassID: intPtr(class.ID)}, "The name must not be blank."},
		{"blank class", dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(0)}, "The class_id must not be blank."},
		{"unknown class", dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(99)}, "Cannot add 'Abi'. The class_id specified does not exist."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := students.CreateStudent(context.Background(), &tt.req)
			if !errors.Is(err, apperrors.ErrBadRequest) {
				t.Fatalf("CreateStudent() error = %v, want bad request", err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}

	if _, n := store.Counts(); n != 0 {
		t.Errorf("stored students = %d, want 0", n)
	}
}

func TestCreateStudent_DuplicateInClass(t *testing.T) {
	store, classes, students := newFixture(t)
	classA := mustCreateClass(t, classes, "Class A")
	classB := mustCreateClass(t, classes, "Class B")
	ctx := context.Background()

	created, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("A"), ClassID: intPtr(classA.ID)})
	if err != nil {
		t.Fatalf("first CreateStudent() error = %v", err)
	}
	if !reflect.DeepEqual(created.ResultSet, models.NewZeroResultSet()) {
		t.Error("new student grids are not all zero")
	}

	_, err = students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("A"), ClassID: intPtr(classA.ID)})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("second CreateStudent() error = %v, want bad request", err)
	}
	if _, n := store.Counts(); n != 1 {
		t.Fatalf("stored students = %d, want 1", n)
	}

	if _, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("A"), ClassID: intPtr(classB.ID)}); err != nil {
		t.Errorf("same name in another class error = %v", err)
	}
}

func TestUpdateStudent_NameOnlyKeepsOtherFields(t *testing.T) {
	_, classes, students := newFixture(t)
	class := mustCreateClass(t, classes, "Class A")
	ctx := context.Background()

	created, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(class.ID)})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	updated, err := students.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{Name: strPtr("Abigail")})
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if updated.Name != "Abigail" {
		t.Errorf("Name = %q, want %q", updated.Name, "Abigail")
	}
	if updated.ClassID != created.ClassID {
		t.Errorf("ClassID = %d, want %d", updated.ClassID, created.ClassID)
	}
	if !reflect.DeepEqual(updated.ResultSet, created.ResultSet) {
		t.Error("grids changed on a name-only update")
	}
}

func TestUpdateStudent_Grids(t *testing.T) {
	_, classes, students := newFixture(t)
	class := mustCreateClass(t, classes, "Class A")
	ctx := context.Background()

	created, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(class.ID)})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	short := models.NewZeroGrid()[:9]
	_, err = students.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		Name:       strPtr("Renamed"),
		GridUpdate: dto.GridUpdate{AddResults: &short},
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("UpdateStudent() error = %v, want bad request", err)
	}
	if err.Error() != "There must be 10 rows in addresults." {
		t.Errorf("message = %q", err.Error())
	}

	narrow := models.NewZeroGrid()
	narrow[3] = narrow[3][:5]
	_, err = students.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{GridUpdate: dto.GridUpdate{DivResults: &narrow}})
	if err == nil || err.Error() != "Each row in divresults must have 10 columns." {
		t.Errorf("UpdateStudent() error = %v, want column error", err)
	}

	got, err := students.GetStudent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetStudent() error = %v", err)
	}
	if got.Name != "Abi" {
		t.Errorf("rejected update was partially written: name = %q", got.Name)
	}

	mul := models.NewZeroGrid()
	mul[2][4] = 15
	updated, err := students.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{GridUpdate: dto.GridUpdate{MulResults: &mul}})
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if updated.MulResults[2][4] != 15 {
		t.Errorf("MulResults[2][4] = %d, want 15", updated.MulResults[2][4])
	}
	if !reflect.DeepEqual(updated.AddResults, models.NewZeroGrid()) {
		t.Error("AddResults changed though it was not supplied")
	}
}

func TestUpdateStudent_Errors(t *testing.T) {
	_, classes, students := newFixture(t)
	classA := mustCreateClass(t, classes, "Class A")
	classB := mustCreateClass(t, classes, "Class B")
	ctx := context.Background()

	abi, _ := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(classA.ID)})
	if _, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(classB.ID)}); err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	tests := []struct {
		name   string
		id     int64
		req    dto.UpdateStudentRequest
		target error
	}{
		{"no fields", abi.ID, dto.UpdateStudentRequest{}, apperrors.ErrBadRequest},
		{"blank name", abi.ID, dto.UpdateStudentRequest{Name: strPtr("")}, apperrors.ErrBadRequest},
		{"missing student", 999, dto.UpdateStudentRequest{Name: strPtr("X")}, apperrors.ErrResourceNotFound},
		{"unknown class", abi.ID, dto.UpdateStudentRequest{ClassID: intPtr(42)}, apperrors.ErrBadRequest},
		{"name taken in target class", abi.ID, dto.UpdateStudentRequest{ClassID: intPtr(classB.ID)}, apperrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := students.UpdateStudent(ctx, tt.id, &tt.req)
			if !errors.Is(err, tt.target) {
				t.Errorf("UpdateStudent() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDeleteStudent(t *testing.T) {
	_, classes, students := newFixture(t)
	class := mustCreateClass(t, classes, "Class A")
	ctx := context.Background()

	if err := students.DeleteStudent(ctx, 1); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("DeleteStudent(missing) error = %v, want not found", err)
	}

	created, _ := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(class.ID)})
	if err := students.DeleteStudent(ctx, created.ID); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	if _, err := students.GetStudent(ctx, created.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("GetStudent() after delete error = %v, want not found", err)
	}
}

func TestListStudents(t *testing.T) {
	_, classes, students := newFixture(t)
	ctx := context.Background()

	if _, err := students.ListStudents(ctx); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("ListStudents(empty) error = %v, want not found", err)
	}

	classA := mustCreateClass(t, classes, "Class A")
	classB := mustCreateClass(t, classes, "Class B")
	for _, name := range []string{"Abi", "Ben"} {
		if _, err := students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: strPtr(name), ClassID: intPtr(classA.ID)}); err != nil {
			t.Fatalf("CreateStudent() error = %v", err)
		}
	}

	all, err := students.ListStudents(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListStudents() = %d students, %v; want 2", len(all), err)
	}

	inA, err := students.ListStudentsByClass(ctx, classA.ID)
	if err != nil || len(inA) != 2 {
		t.Errorf("ListStudentsByClass(A) = %d students, %v; want 2", len(inA), err)
	}
	if _, err := students.ListStudentsByClass(ctx, classB.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("ListStudentsByClass(B) error = %v, want not found", err)
	}
	if _, err := students.ListStudentsByClass(ctx, 77); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("ListStudentsByClass(missing) error = %v, want not found", err)
	}
}

type failingStore struct{ err error }

func (f failingStore) Do(context.Context, func(ctx context.Context, tx repositories.Tx) error) error {
	return f.err
}

func TestPersistenceFailureIsGeneric(t *testing.T) {
	students := NewStudentService(failingStore{err: errors.New("connection reset")})

	_, err := students.CreateStudent(context.Background(), &dto.CreateStudentRequest{Name: strPtr("Abi"), ClassID: intPtr(1)})
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("CreateStudent() error = %v, want persistence error", err)
	}
	if err.Error() != "Unexpected error inserting the student into the database." {
		t.Errorf("message = %q", err.Error())
	}
}
