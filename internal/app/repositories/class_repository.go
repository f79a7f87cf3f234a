package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/abimath/internal/app/models"
	"github.com/yigit/abimath/internal/pkg/dberrors"
	"github.com/yigit/abimath/internal/pkg/logger"
)

var classColumns = []string{"id", "classname", "addresults", "subresults", "mulresults", "divresults"}

// ClassRepository handles class database operations
type ClassRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository over a pool or a transaction
func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	class := &models.Class{}
	err := row.Scan(&class.ID, &class.Name, &class.AddResults, &class.SubResults, &class.MulResults, &class.DivResults)
	if err != nil {
		return nil, err
	}
	return class, nil
}

// Create inserts a class and returns its id
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	sql, args, err := r.sb.Insert("classes").
		Columns("classname", "addresults", "subresults", "mulresults", "divresults").
		Values(class.Name, class.AddResults, class.SubResults, class.MulResults, class.DivResults).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrDuplicate, err)
		}
		logger.Error().Err(err).Str("classname", class.Name).Msg("Error executing create class query")
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	return id, nil
}

func (r *ClassRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting class: %w", err)
	}
	return class, nil
}

// GetByID retrieves a class by id
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves a class by its unique name
func (r *ClassRepository) GetByName(ctx context.Context, name string) (*models.Class, error) {
	return r.getOne(ctx, squirrel.Eq{"classname": name})
}

// List returns all classes ordered by id
func (r *ClassRepository) List(ctx context.Context) ([]*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}

// Exists reports whether a class with the id exists
func (r *ClassRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("classes").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build class exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking class existence: %w", err)
	}
	return exists, nil
}

// Update writes every column of the class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Update("classes").
		SetMap(map[string]interface{}{
			"classname":  class.Name,
			"addresults": class.AddResults,
			"subresults": class.SubResults,
			"mulresults": class.MulResults,
			"divresults": class.DivResults,
		}).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		}
		logger.Error().Err(err).Int64("classID", class.ID).Msg("Error executing update class query")
		return fmt.Errorf("error updating class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a class by id
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
