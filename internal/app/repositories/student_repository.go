package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/schoolbill/backend/internal/app/models"
	"github.com/schoolbill/backend/internal/db"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

// Student directory error types
var ErrStudentNotFound = apperrors.ErrStudentNotFound

// StudentRepository is the read-only projection of the student and class
// directories the billing core consumes. Student lifecycle management is
// owned elsewhere; billing only reads.
type StudentRepository struct {
	db db.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool db.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

// GetByID retrieves a single student projection
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, class_id, name
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(&student.ID, &student.ClassID, &student.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	return r.queryStudents(ctx, `
		SELECT id, class_id, name
		FROM students
		ORDER BY name ASC
	`)
}

// GetByClassID retrieves the students of one class
func (r *StudentRepository) GetByClassID(ctx context.Context, classID int64) ([]models.Student, error) {
	return r.queryStudents(ctx, `
		SELECT id, class_id, name
		FROM students
		WHERE class_id = $1
		ORDER BY name ASC
	`, classID)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.ClassID, &student.Name); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ClassExists checks whether a class exists in the class directory
func (r *StudentRepository) ClassExists(ctx context.Context, classID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1)`, classID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking class existence: %w", err)
	}

	return exists, nil
}
