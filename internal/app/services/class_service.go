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

// ClassService defines the operations on classes
type ClassService interface {
	ListClasses(ctx context.Context) ([]*models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error)
	UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error)
	DeleteClass(ctx context.Context, id int64) error
}

type classServiceImpl struct {
	uow repositories.UnitOfWork
}

// NewClassService creates a new class service
func NewClassService(uow repositories.UnitOfWork) ClassService {
	return &classServiceImpl{uow: uow}
}

// ListClasses returns every class; an empty table is a not-found error
func (s *classServiceImpl) ListClasses(ctx context.Context) ([]*models.Class, error) {
	var classes []*models.Class
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		classes, err = tx.Classes().List(ctx)
		return err
	})
	if err != nil {
		return nil, finish(err, "list_classes", msgReadFailed)
	}
	if len(classes) == 0 {
		return nil, apperrors.NewNotFoundError("There are no classes")
	}
	return classes, nil
}

// GetClass returns one class by id
func (s *classServiceImpl) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	var class *models.Class
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		class, err = tx.Classes().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("id not found in the database.")
		}
		return err
	})
	if err != nil {
		return nil, finish(err, "get_class", msgReadFailed)
	}
	return class, nil
}

// CreateClass inserts a class with zeroed result grids
func (s *classServiceImpl) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	if req.Name == nil {
		return nil, apperrors.NewBadRequestError("Missing input field(s). (name is required.)")
	}
	if isBlank(*req.Name) {
		return nil, apperrors.NewBadRequestError("The name must not be blank.")
	}

	class := &models.Class{
		Name:      *req.Name,
		ResultSet: models.NewZeroResultSet(),
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		_, err := tx.Classes().GetByName(ctx, class.Name)
		switch {
		case err == nil:
			return apperrors.NewBadRequestError(fmt.Sprintf("Cannot add '%s'. That class already exists.", class.Name))
		case !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		class.ID, err = tx.Classes().Create(ctx, class)
		return err
	})
	if err != nil {
		return nil, finish(err, "create_class", "Unexpected error inserting the class into the database.")
	}

	logger.Debug().Int64("classID", class.ID).Msg("Class created")
	return class, nil
}

// UpdateClass applies the supplied fields of req to the class
func (s *classServiceImpl) UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	if req.Name == nil && req.GridUpdate.Empty() {
		return nil, apperrors.NewBadRequestError("Missing input field(s). (name, addresults, subresults, mulresults or divresults is required.)")
	}
	if req.Name != nil && isBlank(*req.Name) {
		return nil, apperrors.NewBadRequestError("The name must not be blank.")
	}
	if err := validateGrids(req.GridUpdate); err != nil {
		return nil, err
	}

	var class *models.Class
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		current, err := tx.Classes().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("id not found in the database.")
		}
		if err != nil {
			return err
		}

		next := *current
		next.ResultSet = current.ResultSet.Clone()
		if req.Name != nil && *req.Name != current.Name {
			next.Name = *req.Name
			_, err := tx.Classes().GetByName(ctx, next.Name)
			switch {
			case err == nil:
				return apperrors.NewBadRequestError(fmt.Sprintf("Cannot update '%s'. That class name already exists.", next.Name))
			case !errors.Is(err, repositories.ErrNotFound):
				return err
			}
		}

		req.GridUpdate.ApplyTo(&next.ResultSet)
		if err := tx.Classes().Update(ctx, &next); err != nil {
			return err
		}
		class = &next
		return nil
	})
	if err != nil {
		return nil, finish(err, "update_class", "Unexpected error updating the database.")
	}
	return class, nil
}

// DeleteClass removes a class that no student references
func (s *classServiceImpl) DeleteClass(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		exists, err := tx.Classes().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("id '%d' not found in the database.", id))
		}

		count, err := tx.Students().CountByClass(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewCustomError(apperrors.ErrBadRequest,
				fmt.Sprintf("Cannot delete class %d. It still has %d student(s).", id, count))
		}

		return tx.Classes().Delete(ctx, id)
	})
	if err != nil {
		return finish(err, "delete_class", "Unexpected error deleting the class from the database.")
	}
	logger.Debug().Int64("classID", id).Msg("Class deleted")
	return nil
}
