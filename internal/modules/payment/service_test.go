package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"doulabook/internal/domain"
	bookingmod "doulabook/internal/modules/booking"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil && args.Error(0) == nil {
		p.ID = 11
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkSucceeded(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockBookingPayer struct {
	mock.Mock
}

func (m *MockBookingPayer) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "whsec_test"

func newPaymentService(payments *MockPaymentRepository, bookings *MockBookingReader, payer *MockBookingPayer, users *MockUserReader) *Service {
	return NewService(payments, bookings, payer, users, Config{
		WebhookSecret: testSecret,
		CheckoutBase:  "https://checkout.example.com/session",
		Currency:      "eur",
	}, zerolog.Nop())
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCheckout_Success(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	users := new(MockUserReader)
	svc := newPaymentService(payments, bookings, new(MockBookingPayer), users)

	bookings.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, MotherID: 1, DoulaID: 2, Status: domain.BookingConfirmed}, nil)
	users.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Role: domain.RoleDoula, Price: 85}, nil)
	payments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	out, err := svc.Checkout(context.Background(), 1, CheckoutRequest{BookingID: 5})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Reference)
	assert.Contains(t, out.URL, "?ref="+out.Reference)

	created := payments.Calls[0].Arguments.Get(1).(*domain.Payment)
	assert.Equal(t, 85.0, created.Amount)
	assert.Equal(t, "eur", created.Currency)
	assert.Equal(t, domain.PaymentPending, created.Status)
}

func TestCheckout_OnlyBookingMother(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	svc := newPaymentService(payments, bookings, new(MockBookingPayer), new(MockUserReader))

	bookings.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, MotherID: 1, DoulaID: 2, Status: domain.BookingConfirmed}, nil)

	_, err := svc.Checkout(context.Background(), 99, CheckoutRequest{BookingID: 5})
	assert.ErrorIs(t, err, ErrForbidden)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_OnlyConfirmedBookings(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingRequested, domain.BookingDeclined, domain.BookingCancelled, domain.BookingPaid,
	} {
		bookings := new(MockBookingReader)
		svc := newPaymentService(new(MockPaymentRepository), bookings, new(MockBookingPayer), new(MockUserReader))
		bookings.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Booking{ID: 5, MotherID: 1, DoulaID: 2, Status: status}, nil)

		_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{BookingID: 5})
		assert.ErrorIs(t, err, ErrNotPayable, "status %s should not be payable", status)
	}
}

func TestHandleWebhook_Success(t *testing.T) {
	payments := new(MockPaymentRepository)
	payer := new(MockBookingPayer)
	svc := newPaymentService(payments, new(MockBookingReader), payer, new(MockUserReader))

	body := []byte(`{"type":"checkout.completed","reference":"ref-1"}`)

	payments.On("MarkSucceeded", mock.Anything, "ref-1").Return(true, nil)
	payments.On("GetByReference", mock.Anything, "ref-1").
		Return(&domain.Payment{ID: 11, BookingID: 5, Reference: "ref-1", Status: domain.PaymentSucceeded}, nil)
	payer.On("MarkPaid", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, Status: domain.BookingPaid}, nil)

	assert.NoError(t, svc.HandleWebhook(context.Background(), body, sign(body)))
	payer.AssertCalled(t, "MarkPaid", mock.Anything, int64(5))
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentService(payments, new(MockBookingReader), new(MockBookingPayer), new(MockUserReader))

	body := []byte(`{"type":"checkout.completed","reference":"ref-1"}`)

	err := svc.HandleWebhook(context.Background(), body, "deadbeef")
	assert.ErrorIs(t, err, ErrBadSignature)
	payments.AssertNotCalled(t, "MarkSucceeded", mock.Anything, mock.Anything)
}

func TestHandleWebhook_TamperedBody(t *testing.T) {
	svc := newPaymentService(new(MockPaymentRepository), new(MockBookingReader), new(MockBookingPayer), new(MockUserReader))

	body := []byte(`{"type":"checkout.completed","reference":"ref-1"}`)
	sig := sign(body)
	tampered := []byte(`{"type":"checkout.completed","reference":"ref-2"}`)

	err := svc.HandleWebhook(context.Background(), tampered, sig)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestHandleWebhook_ReplayIsIdempotent(t *testing.T) {
	payments := new(MockPaymentRepository)
	payer := new(MockBookingPayer)
	svc := newPaymentService(payments, new(MockBookingReader), payer, new(MockUserReader))

	body := []byte(`{"type":"checkout.completed","reference":"ref-1"}`)

	payments.On("MarkSucceeded", mock.Anything, "ref-1").Return(false, nil)

	assert.NoError(t, svc.HandleWebhook(context.Background(), body, sign(body)))
	payer.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	payments := new(MockPaymentRepository)
	svc := newPaymentService(payments, new(MockBookingReader), new(MockBookingPayer), new(MockUserReader))

	body := []byte(`{"type":"checkout.expired","reference":"ref-1"}`)

	assert.NoError(t, svc.HandleWebhook(context.Background(), body, sign(body)))
	payments.AssertNotCalled(t, "MarkSucceeded", mock.Anything, mock.Anything)
}

func TestHandleWebhook_BookingLeftConfirmed(t *testing.T) {
	// Booking was cancelled between checkout and gateway callback; the
	// payment record stays succeeded and the webhook is acknowledged.
	payments := new(MockPaymentRepository)
	payer := new(MockBookingPayer)
	svc := newPaymentService(payments, new(MockBookingReader), payer, new(MockUserReader))

	body := []byte(`{"type":"checkout.completed","reference":"ref-1"}`)

	payments.On("MarkSucceeded", mock.Anything, "ref-1").Return(true, nil)
	payments.On("GetByReference", mock.Anything, "ref-1").
		Return(&domain.Payment{ID: 11, BookingID: 5, Reference: "ref-1"}, nil)
	payer.On("MarkPaid", mock.Anything, int64(5)).Return(nil, bookingmod.ErrInvalidTransition)

	assert.NoError(t, svc.HandleWebhook(context.Background(), body, sign(body)))
}
