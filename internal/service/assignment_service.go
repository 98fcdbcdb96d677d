package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
)

type assignmentOwnerRepo interface {
	FindByID(ctx context.Context, id string) (*models.BookingOwner, error)
}

type assignmentStudentRepo interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	SetTutor(ctx context.Context, studentID string, tutorID *string) error
}

type tutorCatalogProvider interface {
	Catalog(ctx context.Context) ([]models.Tutor, error)
}

type assignmentNotifier interface {
	NotifyAssignment(student models.Student, tutorID string)
}

// AssignTutorsRequest maps student ids to chosen tutor ids. A missing or
// empty entry clears that student's assignment.
type AssignTutorsRequest struct {
	Selections map[string]string `json:"selections" validate:"required"`
}

// AssignmentService applies tutor selections onto an enquiry's students.
type AssignmentService struct {
	owners    assignmentOwnerRepo
	students  assignmentStudentRepo
	tutors    tutorCatalogProvider
	enquiries *EnquiryService
	notifier  assignmentNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(owners assignmentOwnerRepo, students assignmentStudentRepo, tutors tutorCatalogProvider, enquiries *EnquiryService, notifier assignmentNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		owners:    owners,
		students:  students,
		tutors:    tutors,
		enquiries: enquiries,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Assign applies the selections to every student under the enquiry's owner.
// Each student's update is issued concurrently and the batch is awaited as a
// whole; there is no transaction across students and no rollback. A failed
// row does not block rows already issued. Row-level failures are logged, not
// returned; only a failure to orchestrate the batch surfaces to the caller.
// Two overlapping invocations for the same student race, last write wins.
func (s *AssignmentService) Assign(ctx context.Context, ownerID string, req AssignTutorsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiry")
	}

	if err := ctx.Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assignment batch aborted")
	}

	var wg sync.WaitGroup
	for _, student := range owner.Students {
		student := student
		tutorID, ok := req.Selections[student.ID]

		wg.Add(1)
		go func() {
			defer wg.Done()

			var ref *string
			if ok && tutorID != "" {
				ref = &tutorID
			}
			if err := s.students.SetTutor(ctx, student.ID, ref); err != nil {
				// Logged only: a single failed row must not fail the batch.
				s.metrics.RecordAssignmentUpdate("error")
				s.logger.Error("tutor assignment update failed",
					zap.String("student_id", student.ID),
					zap.String("owner_id", owner.ID),
					zap.Error(err))
				return
			}
			s.metrics.RecordAssignmentUpdate("ok")
			if ref != nil && s.notifier != nil {
				s.notifier.NotifyAssignment(student, *ref)
			}
		}()
	}
	wg.Wait()

	s.enquiries.Invalidate(ctx)
	return nil
}

// AllocatableTutors returns the tutors eligible for one student: those whose
// instrument set overlaps the student's requested set, in catalog order.
func (s *AssignmentService) AllocatableTutors(ctx context.Context, studentID string) ([]models.Tutor, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	catalog, err := s.tutors.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return EligibleTutors(student.Instruments, catalog), nil
}
