package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

// ArchiveRepository copies enquiry snapshots into the deleted_enquiries
// table. Archival keeps a full JSON snapshot so the original row shape
// survives schema drift.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository constructs an ArchiveRepository.
func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Archive stores a snapshot of the owner (students included) in
// deleted_enquiries. The source row is untouched.
func (r *ArchiveRepository) Archive(ctx context.Context, owner *models.BookingOwner) error {
	payload, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("marshal enquiry snapshot: %w", err)
	}

	const query = `INSERT INTO deleted_enquiries (id, booking_owner_id, payload, archived_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), owner.ID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("archive enquiry: %w", err)
	}
	return nil
}

// Count returns the number of archived enquiry snapshots.
func (r *ArchiveRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM deleted_enquiries`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count archived enquiries: %w", err)
	}
	return count, nil
}
