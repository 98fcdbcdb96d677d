package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

// BookingOwnerRepository reads booking owners and their linked students.
type BookingOwnerRepository struct {
	db *sqlx.DB
}

// NewBookingOwnerRepository constructs a BookingOwnerRepository.
func NewBookingOwnerRepository(db *sqlx.DB) *BookingOwnerRepository {
	return &BookingOwnerRepository{db: db}
}

// ListWithStudents fetches every booking owner with its students attached.
// Two set-based queries, grouped in memory; never one query per owner.
func (r *BookingOwnerRepository) ListWithStudents(ctx context.Context) ([]models.BookingOwner, error) {
	const ownersQuery = `SELECT id, first_name, last_name, email, phone, postcode, ward, age, instruments, level, message, status, assigned_tutor_id, created_at, updated_at
FROM booking_owners
ORDER BY created_at DESC`
	var owners []models.BookingOwner
	if err := r.db.SelectContext(ctx, &owners, ownersQuery); err != nil {
		return nil, fmt.Errorf("list booking owners: %w", err)
	}
	if len(owners) == 0 {
		return owners, nil
	}

	const studentsQuery = `SELECT id, booking_owner_id, name, age, instruments, level, tutor_id, is_tutor_assigned, created_at, updated_at
FROM students
ORDER BY created_at ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, studentsQuery); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	byOwner := make(map[string][]models.Student, len(owners))
	for _, s := range students {
		byOwner[s.BookingOwnerID] = append(byOwner[s.BookingOwnerID], s)
	}
	for i := range owners {
		owners[i].Students = byOwner[owners[i].ID]
	}
	return owners, nil
}

// FindByID fetches a single owner with students attached.
func (r *BookingOwnerRepository) FindByID(ctx context.Context, id string) (*models.BookingOwner, error) {
	const query = `SELECT id, first_name, last_name, email, phone, postcode, ward, age, instruments, level, message, status, assigned_tutor_id, created_at, updated_at
FROM booking_owners WHERE id = $1`
	var owner models.BookingOwner
	if err := r.db.GetContext(ctx, &owner, query, id); err != nil {
		return nil, err
	}

	const studentsQuery = `SELECT id, booking_owner_id, name, age, instruments, level, tutor_id, is_tutor_assigned, created_at, updated_at
FROM students WHERE booking_owner_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &owner.Students, studentsQuery, id); err != nil {
		return nil, fmt.Errorf("list owner students: %w", err)
	}
	return &owner, nil
}

// Delete removes a booking owner row. Linked students cascade in storage.
func (r *BookingOwnerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM booking_owners WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete booking owner: %w", err)
	}
	return nil
}

// CountByStatus returns the number of owners carrying the given status.
func (r *BookingOwnerRepository) CountByStatus(ctx context.Context, status models.EnquiryStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM booking_owners WHERE status = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count booking owners: %w", err)
	}
	return count, nil
}

// Count returns the total number of booking owners.
func (r *BookingOwnerRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM booking_owners`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count booking owners: %w", err)
	}
	return count, nil
}
