package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
)

// CacheKeyEnquiries is the logical cache key for the projected enquiry list.
const CacheKeyEnquiries = "enquiries"

type bookingOwnerReader interface {
	ListWithStudents(ctx context.Context) ([]models.BookingOwner, error)
}

// EnquiryService projects booking owners and their students into the
// denormalized enquiry view consumed by the admin screens.
type EnquiryService struct {
	owners bookingOwnerReader
	cache  *CacheService
	logger *zap.Logger
	ttl    time.Duration
}

// NewEnquiryService constructs an EnquiryService.
func NewEnquiryService(owners bookingOwnerReader, cache *CacheService, ttl time.Duration, logger *zap.Logger) *EnquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{owners: owners, cache: cache, logger: logger, ttl: ttl}
}

// List returns the full enquiry view. A failed read fails the whole
// projection with the store's error; there are no partial results.
func (s *EnquiryService) List(ctx context.Context) ([]models.Enquiry, error) {
	var cached []models.Enquiry
	if hit, _ := s.cache.Get(ctx, CacheKeyEnquiries, &cached); hit {
		return cached, nil
	}

	owners, err := s.owners.ListWithStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiries")
	}

	enquiries := BuildEnquiries(owners)

	if err := s.cache.Set(ctx, CacheKeyEnquiries, enquiries, s.ttl); err != nil {
		s.logger.Warn("failed to cache enquiries", zap.Error(err))
	}
	return enquiries, nil
}

// Invalidate drops the cached projection so the next read hits the store.
func (s *EnquiryService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, CacheKeyEnquiries); err != nil {
		s.logger.Warn("failed to invalidate enquiry cache", zap.Error(err))
	}
}

// BuildEnquiries synthesizes the flat enquiry view from owners in input
// order. An owner with k students yields k rows; an owner with none yields
// one synthetic self-booking row keyed by the owner's own id.
func BuildEnquiries(owners []models.BookingOwner) []models.Enquiry {
	enquiries := make([]models.Enquiry, 0, len(owners))
	for _, owner := range owners {
		if len(owner.Students) > 0 {
			// The display string aggregates instruments across ALL of the
			// owner's students, so every one of this owner's rows carries
			// the identical joined string. Long-standing dashboard
			// behaviour; do not narrow to the row's own student.
			var all models.InstrumentList
			for _, student := range owner.Students {
				all = append(all, student.Instruments.Normalize()...)
			}

			for _, student := range owner.Students {
				enquiries = append(enquiries, models.Enquiry{
					ID:              owner.ID,
					FirstName:       owner.FirstName,
					LastName:        owner.LastName,
					Email:           owner.Email,
					Phone:           owner.Phone,
					Postcode:        owner.Postcode,
					Ward:            owner.Ward,
					Message:         owner.Message,
					Status:          owner.Status,
					AssignedTutorID: owner.AssignedTutorID,
					CreatedAt:       owner.CreatedAt,
					StudentID:       student.ID,
					StudentName:     student.Name,
					StudentAge:      student.Age,
					Instruments:     all.Display(),
					Level:           student.Level,
					IsSelfBooking:   false,
					BookingType:     models.BookingParentForChild,
					Students:        owner.Students,
				})
			}
			continue
		}

		enquiries = append(enquiries, models.Enquiry{
			ID:              owner.ID,
			FirstName:       owner.FirstName,
			LastName:        owner.LastName,
			Email:           owner.Email,
			Phone:           owner.Phone,
			Postcode:        owner.Postcode,
			Ward:            owner.Ward,
			Message:         owner.Message,
			Status:          owner.Status,
			AssignedTutorID: owner.AssignedTutorID,
			CreatedAt:       owner.CreatedAt,
			StudentID:       owner.ID,
			StudentName:     fmt.Sprintf("%s %s", owner.FirstName, owner.LastName),
			StudentAge:      owner.Age,
			Instruments:     owner.Instruments.Normalize().Display(),
			Level:           owner.Level,
			IsSelfBooking:   true,
			BookingType:     models.BookingSelf,
			Students:        []models.Student{},
		})
	}
	return enquiries
}
