package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

// TutorRepository manages persistence for the tutor roster.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository constructs a TutorRepository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// List returns the full tutor catalog in one read. No server-side filtering;
// allocation happens over the whole set and preserves this order.
func (r *TutorRepository) List(ctx context.Context) ([]models.Tutor, error) {
	const query = `SELECT id, name, email, phone, instruments, postcode, strikes, active, created_at, updated_at FROM tutors`
	var tutors []models.Tutor
	if err := r.db.SelectContext(ctx, &tutors, query); err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}

// FindByID fetches a tutor by ID.
func (r *TutorRepository) FindByID(ctx context.Context, id string) (*models.Tutor, error) {
	const query = `SELECT id, name, email, phone, instruments, postcode, strikes, active, created_at, updated_at FROM tutors WHERE id = $1`
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, query, id); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// Create inserts a new tutor record.
func (r *TutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	if tutor.ID == "" {
		tutor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tutor.CreatedAt.IsZero() {
		tutor.CreatedAt = now
	}
	tutor.UpdatedAt = now

	const query = `INSERT INTO tutors (id, name, email, phone, instruments, postcode, strikes, active, created_at, updated_at)
		VALUES (:id, :name, :email, :phone, :instruments, :postcode, :strikes, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tutor); err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}
	return nil
}

// Update modifies an existing tutor record.
func (r *TutorRepository) Update(ctx context.Context, tutor *models.Tutor) error {
	tutor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tutors SET name = :name, email = :email, phone = :phone, instruments = :instruments, postcode = :postcode, strikes = :strikes, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, tutor); err != nil {
		return fmt.Errorf("update tutor: %w", err)
	}
	return nil
}

// Deactivate sets a tutor's active flag to false.
func (r *TutorRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE tutors SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate tutor: %w", err)
	}
	return nil
}

// DeleteAll wipes the roster. Used by the seeding tool only.
func (r *TutorRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tutors`)
	if err != nil {
		return 0, fmt.Errorf("delete tutors: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted tutor rows: %w", err)
	}
	return affected, nil
}

// Counts returns total and active tutor counts.
func (r *TutorRepository) Counts(ctx context.Context) (total int, active int, err error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM tutors`
	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("count tutors: %w", err)
	}
	return total, active, nil
}
