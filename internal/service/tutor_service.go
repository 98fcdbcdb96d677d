package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
)

// CacheKeyTutors is the logical cache key for the tutor catalog.
const CacheKeyTutors = "tutors"

type tutorRepository interface {
	List(ctx context.Context) ([]models.Tutor, error)
	FindByID(ctx context.Context, id string) (*models.Tutor, error)
	Create(ctx context.Context, tutor *models.Tutor) error
	Update(ctx context.Context, tutor *models.Tutor) error
	Deactivate(ctx context.Context, id string) error
}

// CreateTutorRequest represents payload for creating tutors.
type CreateTutorRequest struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=50"`
	Instruments []string `json:"instruments" validate:"required,min=1"`
	Postcode    *string  `json:"postcode" validate:"omitempty,max=20"`
}

// UpdateTutorRequest represents payload for updating tutors.
type UpdateTutorRequest struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=50"`
	Instruments []string `json:"instruments" validate:"required,min=1"`
	Postcode    *string  `json:"postcode" validate:"omitempty,max=20"`
	Strikes     *int     `json:"strikes" validate:"omitempty,min=0"`
	Active      *bool    `json:"active"`
}

// TutorService exposes the tutor catalog and roster management.
type TutorService struct {
	repo      tutorRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	ttl       time.Duration
}

// NewTutorService constructs a TutorService.
func NewTutorService(repo tutorRepository, cache *CacheService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *TutorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TutorService{repo: repo, cache: cache, validator: validate, logger: logger, ttl: ttl}
}

// Catalog returns the full tutor set in one read, in store order. Callers
// treat an unavailable catalog as "no tutors assignable", not a crash.
func (s *TutorService) Catalog(ctx context.Context) ([]models.Tutor, error) {
	var cached []models.Tutor
	if hit, _ := s.cache.Get(ctx, CacheKeyTutors, &cached); hit {
		return cached, nil
	}

	tutors, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tutors")
	}

	if err := s.cache.Set(ctx, CacheKeyTutors, tutors, s.ttl); err != nil {
		s.logger.Warn("failed to cache tutors", zap.Error(err))
	}
	return tutors, nil
}

// Get returns a tutor by id.
func (s *TutorService) Get(ctx context.Context, id string) (*models.Tutor, error) {
	tutor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}
	return tutor, nil
}

// Create registers a new tutor on the roster.
func (s *TutorService) Create(ctx context.Context, req CreateTutorRequest) (*models.Tutor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutor payload")
	}

	tutor := &models.Tutor{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       req.Phone,
		Instruments: models.InstrumentList(req.Instruments).Normalize(),
		Postcode:    req.Postcode,
		Active:      true,
	}
	if err := s.repo.Create(ctx, tutor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tutor")
	}
	s.invalidateCatalog(ctx)
	return tutor, nil
}

// Update modifies an existing tutor.
func (s *TutorService) Update(ctx context.Context, id string, req UpdateTutorRequest) (*models.Tutor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutor payload")
	}

	tutor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}

	tutor.Name = strings.TrimSpace(req.Name)
	tutor.Email = strings.TrimSpace(req.Email)
	tutor.Phone = req.Phone
	tutor.Instruments = models.InstrumentList(req.Instruments).Normalize()
	tutor.Postcode = req.Postcode
	if req.Strikes != nil {
		tutor.Strikes = *req.Strikes
	}
	if req.Active != nil {
		tutor.Active = *req.Active
	}

	if err := s.repo.Update(ctx, tutor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tutor")
	}
	s.invalidateCatalog(ctx)
	return tutor, nil
}

// Deactivate marks a tutor inactive.
func (s *TutorService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate tutor")
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *TutorService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, CacheKeyTutors); err != nil {
		s.logger.Warn("failed to invalidate tutor cache", zap.Error(err))
	}
}
