package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"doulabook/internal/domain"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = 42
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByDoula(ctx context.Context, doulaID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, doulaID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

type MockBookingGate struct {
	mock.Mock
}

func (m *MockBookingGate) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingGate) FirstPaidUnreviewed(ctx context.Context, motherID, doulaID int64) (*domain.Booking, error) {
	args := m.Called(ctx, motherID, doulaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestCanReview_Eligible(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("FirstPaidUnreviewed", mock.Anything, int64(1), int64(2)).
		Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: domain.BookingPaid}, nil)

	out, err := svc.CanReview(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.True(t, out.Eligible)
	assert.Equal(t, int64(10), *out.BookingID)
}

func TestCanReview_NoPaidBooking(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("FirstPaidUnreviewed", mock.Anything, int64(1), int64(2)).Return(nil, nil)

	out, err := svc.CanReview(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.False(t, out.Eligible)
	assert.Nil(t, out.BookingID)
}

func TestCreateReview_Success(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: domain.BookingPaid}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(10)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	rv, err := svc.Create(context.Background(), 1, CreateReviewRequest{
		BookingID: 10, Rating: 5, Comment: "wonderful support",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), rv.DoulaID)
	assert.Equal(t, 5, rv.Rating)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	svc := NewService(new(MockReviewRepository), new(MockBookingGate))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 10, Rating: rating})
		assert.ErrorIs(t, err, ErrValidation, "rating %d should fail", rating)
	}
}

func TestCreateReview_BookingNotFound(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("GetByID", mock.Anything, int64(10)).Return(nil, errors.New("record not found"))

	_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReview_NotTheBookingMother(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: domain.BookingPaid}, nil)

	_, err := svc.Create(context.Background(), 99, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestCreateReview_BookingNotPaid(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingRequested, domain.BookingConfirmed, domain.BookingDeclined, domain.BookingCancelled,
	} {
		gate := new(MockBookingGate)
		svc := NewService(new(MockReviewRepository), gate)
		gate.On("GetByID", mock.Anything, int64(10)).
			Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: status}, nil)

		_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 10, Rating: 4})
		assert.ErrorIs(t, err, ErrNotEligible, "status %s should not be reviewable", status)
	}
}

func TestCreateReview_OnlyOncePerBooking(t *testing.T) {
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: domain.BookingPaid}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(10)).Return(true, nil)

	_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, ErrNotEligible)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_UniqueIndexRace(t *testing.T) {
	// Two submissions race past the existence check; the second insert
	// hits the unique index and surfaces as not eligible.
	reviews := new(MockReviewRepository)
	gate := new(MockBookingGate)
	svc := NewService(reviews, gate)

	gate.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Booking{ID: 10, MotherID: 1, DoulaID: 2, Status: domain.BookingPaid}, nil)
	reviews.On("ExistsForBooking", mock.Anything, int64(10)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Return(errors.New(`duplicate key value violates unique constraint "idx_reviews_booking_id" (SQLSTATE 23505)`))

	_, err := svc.Create(context.Background(), 1, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, ErrNotEligible)
}
