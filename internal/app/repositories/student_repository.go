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

var studentColumns = []string{"id", "class_id", "name", "addresults", "subresults", "mulresults", "divresults"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository over a pool or a transaction
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.ClassID, &s.Name, &s.AddResults, &s.SubResults, &s.MulResults, &s.DivResults)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// classifyWriteError maps constraint violations to repository errors
func classifyWriteError(err error) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %w", ErrMissingClass, err)
	}
	return nil
}

// Create inserts a student and returns its id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("class_id", "name", "addresults", "subresults", "mulresults", "divresults").
		Values(student.ClassID, student.Name, student.AddResults, student.SubResults, student.MulResults, student.DivResults).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if cerr := classifyWriteError(err); cerr != nil {
			return 0, cerr
		}
		logger.Error().Err(err).Int64("classID", student.ClassID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByClassAndName retrieves the student with name in class classID
func (r *StudentRepository) FindByClassAndName(ctx context.Context, classID int64, name string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"class_id": classID, "name": name})
}

func (r *StudentRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Student, error) {
	q := r.sb.Select(studentColumns...).From("students").OrderBy("id ASC")
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// List returns all students ordered by id
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, nil)
}

// ListByClass returns the students of one class
func (r *StudentRepository) ListByClass(ctx context.Context, classID int64) ([]*models.Student, error) {
	return r.list(ctx, squirrel.Eq{"class_id": classID})
}

// CountByClass counts the students of one class
func (r *StudentRepository) CountByClass(ctx context.Context, classID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("students").
		Where(squirrel.Eq{"class_id": classID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}

// Update writes every column of the student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"class_id":   student.ClassID,
			"name":       student.Name,
			"addresults": student.AddResults,
			"subresults": student.SubResults,
			"mulresults": student.MulResults,
			"divresults": student.DivResults,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if cerr := classifyWriteError(err); cerr != nil {
			return cerr
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student by id
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
