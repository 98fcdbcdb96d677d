package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
)

type archiveOwnerRepo interface {
	FindByID(ctx context.Context, id string) (*models.BookingOwner, error)
	Delete(ctx context.Context, id string) error
}

type archiveStudentRepo interface {
	Delete(ctx context.Context, id string) error
}

type archiveStore interface {
	Archive(ctx context.Context, owner *models.BookingOwner) error
}

// ArchiveService moves enquiries into the deleted_enquiries archive and
// removes student rows on request.
type ArchiveService struct {
	owners    archiveOwnerRepo
	students  archiveStudentRepo
	archive   archiveStore
	enquiries *EnquiryService
	logger    *zap.Logger
}

// NewArchiveService constructs an ArchiveService.
func NewArchiveService(owners archiveOwnerRepo, students archiveStudentRepo, archive archiveStore, enquiries *EnquiryService, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{owners: owners, students: students, archive: archive, enquiries: enquiries, logger: logger}
}

// Archive snapshots the enquiry into deleted_enquiries, keeping the live row.
func (s *ArchiveService) Archive(ctx context.Context, ownerID string) error {
	owner, err := s.loadOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := s.archive.Archive(ctx, owner); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive enquiry")
	}
	return nil
}

// Delete archives the enquiry and then removes the live row. The archive
// insert must succeed before the delete is issued.
func (s *ArchiveService) Delete(ctx context.Context, ownerID string) error {
	owner, err := s.loadOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := s.archive.Archive(ctx, owner); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive enquiry")
	}
	if err := s.owners.Delete(ctx, ownerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enquiry")
	}
	s.enquiries.Invalidate(ctx)
	return nil
}

// DeleteStudent removes a single student row from an enquiry.
func (s *ArchiveService) DeleteStudent(ctx context.Context, studentID string) error {
	if err := s.students.Delete(ctx, studentID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.enquiries.Invalidate(ctx)
	return nil
}

func (s *ArchiveService) loadOwner(ctx context.Context, ownerID string) (*models.BookingOwner, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiry")
	}
	return owner, nil
}
