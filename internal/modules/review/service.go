package review

import (
	"context"
	"strings"

	"doulabook/internal/domain"
	"doulabook/internal/pkg/metrics"
	"doulabook/internal/pkg/validator"
)

// BookingGate is the slice of the booking store the review gate needs.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FirstPaidUnreviewed(ctx context.Context, motherID, doulaID int64) (*domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByDoula(ctx context.Context, doulaID int64, limit, offset int) ([]domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
}

func NewService(reviews ReviewRepository, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// CanReview reports whether the mother may review the doula, returning
// the specific paid, not-yet-reviewed booking that grants eligibility.
func (s *Service) CanReview(ctx context.Context, motherID, doulaID int64) (CanReviewResponse, error) {
	b, err := s.bookings.FirstPaidUnreviewed(ctx, motherID, doulaID)
	if err != nil {
		return CanReviewResponse{}, err
	}
	if b == nil {
		return CanReviewResponse{Eligible: false}, nil
	}
	return CanReviewResponse{Eligible: true, BookingID: &b.ID}, nil
}

// Create submits a review for a paid booking. One review per booking;
// the unique index on reviews.booking_id backs the same rule.
func (s *Service) Create(ctx context.Context, motherID int64, req CreateReviewRequest) (*domain.Review, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.MotherID != motherID {
		return nil, ErrNotEligible
	}
	if b.Status != domain.BookingPaid {
		return nil, ErrNotEligible
	}

	reviewed, err := s.reviews.ExistsForBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrNotEligible
	}

	rv := &domain.Review{
		BookingID: req.BookingID,
		MotherID:  b.MotherID,
		DoulaID:   b.DoulaID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNotEligible
		}
		return nil, err
	}

	metrics.ReviewsCreated.Inc()
	return rv, nil
}

func (s *Service) GetByDoula(ctx context.Context, doulaID int64, limit, offset int) ([]domain.Review, error) {
	if doulaID <= 0 {
		return nil, ErrValidation
	}
	return s.reviews.GetByDoula(ctx, doulaID, limit, offset)
}

func isUniqueViolation(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "23505")
}
