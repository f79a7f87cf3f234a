package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/app/repositories"
	"github.com/yigit/abimath/internal/pkg/apperrors"
	"github.com/yigit/abimath/internal/pkg/logger"
)

// StudentService defines the operations on students
type StudentService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	ListStudentsByClass(ctx context.Context, classID int64) ([]*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	uow repositories.UnitOfWork
}

// NewStudentService creates a new student service
func NewStudentService(uow repositories.UnitOfWork) StudentService {
	return &studentServiceImpl{uow: uow}
}

// ListStudents returns every student; an empty table is a not-found error
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		students, err = tx.Students().List(ctx)
		return err
	})
	if err != nil {
		return nil, finish(err, "list_students", msgReadFailed)
	}
	if len(students) == 0 {
		return nil, apperrors.NewNotFoundError("There are no students")
	}
	return students, nil
}

// ListStudentsByClass returns the students of one class
func (s *studentServiceImpl) ListStudentsByClass(ctx context.Context, classID int64) ([]*models.Student, error) {
	var students []*models.Student
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		exists, err := tx.Classes().Exists(ctx, classID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError("class id not found in the database.")
		}
		students, err = tx.Students().ListByClass(ctx, classID)
		return err
	})
	if err != nil {
		return nil, finish(err, "list_class_students", msgReadFailed)
	}
	if len(students) == 0 {
		return nil, apperrors.NewNotFoundError("There are no students in the class")
	}
	return students, nil
}

// GetStudent returns one student by id
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var student *models.Student
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		student, err = tx.Students().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("id not found in the database.")
		}
		return err
	})
	if err != nil {
		return nil, finish(err, "get_student", msgReadFailed)
	}
	return student, nil
}

func validateCreateStudent(req *dto.CreateStudentRequest) error {
	switch {
	case req.Name == nil && req.ClassID == nil:
		return apperrors.NewBadRequestError("Missing input field(s). (name and class_id are required.)")
	case req.Name == nil:
		return apperrors.NewBadRequestError("Missing input field(s). (name is required.)")
	case req.ClassID == nil:
		return apperrors.NewBadRequestError("Missing input field(s). (class_id is required.)")
	case isBlank(*req.Name):
		return apperrors.NewBadRequestError("The name must not be blank.")
	case *req.ClassID <= 0:
		return apperrors.NewBadRequestError("The class_id must not be blank.")
	}
	return nil
}

// CreateStudent inserts a student with zeroed result grids
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if err := validateCreateStudent(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		ClassID:   *req.ClassID,
		Name:      *req.Name,
		ResultSet: models.NewZeroResultSet(),
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		exists, err := tx.Classes().Exists(ctx, student.ClassID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewBadRequestError(fmt.Sprintf("Cannot add '%s'. The class_id specified does not exist.", student.Name))
		}

		_, err = tx.Students().FindByClassAndName(ctx, student.ClassID, student.Name)
		switch {
		case err == nil:
			return apperrors.NewBadRequestError(fmt.Sprintf("Cannot add '%s'. That student already exists in the class.", student.Name))
		case !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		student.ID, err = tx.Students().Create(ctx, student)
		return err
	})
	if err != nil {
		return nil, finish(err, "create_student", "Unexpected error inserting the student into the database.")
	}

	logger.Debug().Int64("studentID", student.ID).Int64("classID", student.ClassID).Msg("Student created")
	return student, nil
}

func validateUpdateStudent(req *dto.UpdateStudentRequest) error {
	if req.ClassID == nil && req.Name == nil && req.GridUpdate.Empty() {
		return apperrors.NewBadRequestError("Missing input field(s). (class_id, name, addresults, subresults, mulresults or divresults is required.)")
	}
	if req.Name != nil && isBlank(*req.Name) {
		return apperrors.NewBadRequestError("The name must not be blank.")
	}
	if req.ClassID != nil && *req.ClassID <= 0 {
		return apperrors.NewBadRequestError("The class_id must not be blank.")
	}
	return validateGrids(req.GridUpdate)
}

// UpdateStudent applies the supplied fields of req to the student
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := validateUpdateStudent(req); err != nil {
		return nil, err
	}

	var student *models.Student
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		current, err := tx.Students().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("id not found in the database.")
		}
		if err != nil {
			return err
		}

		next := *current
		next.ResultSet = current.ResultSet.Clone()
		if req.Name != nil {
			next.Name = *req.Name
		}
		if req.ClassID != nil {
			next.ClassID = *req.ClassID
		}

		if next.ClassID != current.ClassID {
			exists, err := tx.Classes().Exists(ctx, next.ClassID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError(fmt.Sprintf("Cannot update '%s'. The class_id specified does not exist.", next.Name))
			}
		}

		if next.ClassID != current.ClassID || next.Name != current.Name {
			other, err := tx.Students().FindByClassAndName(ctx, next.ClassID, next.Name)
			switch {
			case err == nil && other.ID != id:
				return apperrors.NewBadRequestError(fmt.Sprintf("Cannot update '%s'. That student name already exists in the class.", next.Name))
			case err != nil && !errors.Is(err, repositories.ErrNotFound):
				return err
			}
		}

		req.GridUpdate.ApplyTo(&next.ResultSet)
		if err := tx.Students().Update(ctx, &next); err != nil {
			return err
		}
		student = &next
		return nil
	})
	if err != nil {
		return nil, finish(err, "update_student", "Unexpected error updating the database.")
	}
	return student, nil
}

// DeleteStudent removes a student by id
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		err := tx.Students().Delete(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("id '%d' not found in the database.", id))
		}
		return err
	})
	if err != nil {
		return finish(err, "delete_student", "Unexpected error deleting the student from the database.")
	}
	logger.Debug().Int64("studentID", id).Msg("Student deleted")
	return nil
}
