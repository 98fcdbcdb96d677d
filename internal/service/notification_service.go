package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	"github.com/museconnect/tutor-admin-api/pkg/config"
	"github.com/museconnect/tutor-admin-api/pkg/jobs"
)

const jobTypeAssignmentEmail = "assignment_email"

// AssignmentNotification is the payload queued per assigned student.
type AssignmentNotification struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	TutorID     string `json:"tutor_id"`
}

// NotificationService queues the post-assignment notifications. Delivery is
// a stub: the surrounding flow references confirmation emails to student and
// tutor, but no mail is actually sent here; the handler records the intent.
type NotificationService struct {
	queue   *jobs.Queue
	logger  *zap.Logger
	enabled bool
}

// NewNotificationService constructs the service and its backing queue.
func NewNotificationService(cfg config.NotifyConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{logger: logger, enabled: cfg.Enabled}
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start begins queue consumption.
func (s *NotificationService) Start(ctx context.Context) {
	if s.enabled {
		s.queue.Start(ctx)
	}
}

// Stop drains the queue workers.
func (s *NotificationService) Stop() {
	if s.enabled {
		s.queue.Stop()
	}
}

// NotifyAssignment queues the student-confirmation and tutor-notification
// pair for a freshly assigned student. Fire and forget.
func (s *NotificationService) NotifyAssignment(student models.Student, tutorID string) {
	if !s.enabled {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Type: jobTypeAssignmentEmail,
		Payload: AssignmentNotification{
			StudentID:   student.ID,
			StudentName: student.Name,
			TutorID:     tutorID,
		},
	})
	if err != nil {
		s.logger.Warn("failed to queue assignment notification", zap.Error(err))
	}
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(AssignmentNotification)
	if !ok {
		s.logger.Warn("dropping notification with unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	// TODO: plug in the transactional email provider once one is chosen.
	s.logger.Info("assignment notification",
		zap.String("student_id", payload.StudentID),
		zap.String("student_name", payload.StudentName),
		zap.String("tutor_id", payload.TutorID),
		zap.String("emails", "student_confirmation,tutor_notification"))
	return nil
}
