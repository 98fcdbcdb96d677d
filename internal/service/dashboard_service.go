package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
)

type dashboardOwnerRepo interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.EnquiryStatus) (int, error)
}

type dashboardStudentRepo interface {
	CountAssigned(ctx context.Context) (int, error)
}

type dashboardTutorRepo interface {
	Counts(ctx context.Context) (total int, active int, err error)
}

type dashboardArchiveRepo interface {
	Count(ctx context.Context) (int, error)
}

// DashboardService aggregates counts for the admin landing page.
type DashboardService struct {
	owners   dashboardOwnerRepo
	students dashboardStudentRepo
	tutors   dashboardTutorRepo
	archive  dashboardArchiveRepo
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(owners dashboardOwnerRepo, students dashboardStudentRepo, tutors dashboardTutorRepo, archive dashboardArchiveRepo, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{owners: owners, students: students, tutors: tutors, archive: archive, logger: logger}
}

// Stats returns the aggregated dashboard counters.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	total, err := s.owners.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enquiries")
	}
	fresh, err := s.owners.CountByStatus(ctx, models.StatusNew)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count new enquiries")
	}
	assigned, err := s.students.CountAssigned(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count assigned students")
	}
	totalTutors, activeTutors, err := s.tutors.Counts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count tutors")
	}
	archived, err := s.archive.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count archived enquiries")
	}

	return &models.DashboardStats{
		TotalEnquiries:    total,
		NewEnquiries:      fresh,
		AssignedStudents:  assigned,
		TotalTutors:       totalTutors,
		ActiveTutors:      activeTutors,
		ArchivedEnquiries: archived,
	}, nil
}
