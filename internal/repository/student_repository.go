package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

// StudentRepository mutates the tutor-reference fields on student rows.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, booking_owner_id, name, age, instruments, level, tutor_id, is_tutor_assigned, created_at, updated_at
FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// SetTutor records the chosen tutor on a student, keeping the flag in step
// with the reference: non-nil tutor means assigned, nil means cleared.
// The flag is enforced here, not by storage.
func (r *StudentRepository) SetTutor(ctx context.Context, studentID string, tutorID *string) error {
	const query = `UPDATE students SET tutor_id = $2, is_tutor_assigned = $3, updated_at = $4 WHERE id = $1`
	assigned := tutorID != nil && *tutorID != ""
	var ref interface{}
	if assigned {
		ref = *tutorID
	}
	result, err := r.db.ExecContext(ctx, query, studentID, ref, assigned, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set student tutor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated student rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM students WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted student rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountAssigned returns the number of students with an assigned tutor.
func (r *StudentRepository) CountAssigned(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE is_tutor_assigned = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count assigned students: %w", err)
	}
	return count, nil
}
