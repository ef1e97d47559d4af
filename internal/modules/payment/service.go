package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"doulabook/internal/domain"
	bookingmod "doulabook/internal/modules/booking"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	MarkSucceeded(ctx context.Context, reference string) (bool, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BookingPayer drives the confirmed -> paid transition. The webhook is
// the only caller allowed to do so.
type BookingPayer interface {
	MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Config struct {
	WebhookSecret string
	CheckoutBase  string
	Currency      string
}

type Service struct {
	payments PaymentRepository
	bookings BookingReader
	payer    BookingPayer
	users    UserReader
	cfg      Config
	log      zerolog.Logger
}

func NewService(
	payments PaymentRepository,
	bookings BookingReader,
	payer BookingPayer,
	users UserReader,
	cfg Config,
	log zerolog.Logger,
) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		payer:    payer,
		users:    users,
		cfg:      cfg,
		log:      log,
	}
}

// Checkout creates a gateway session reference for a confirmed booking.
// Amount comes from the doula's listed price; the gateway handles the
// actual charge and reports back via the webhook.
func (s *Service) Checkout(ctx context.Context, actorID int64, req CheckoutRequest) (*CheckoutResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.MotherID != actorID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrNotPayable
	}

	doula, err := s.users.GetByID(ctx, b.DoulaID)
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		BookingID: b.ID,
		Reference: uuid.NewString(),
		Amount:    doula.Price,
		Currency:  s.cfg.Currency,
		Status:    domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	return &CheckoutResponse{
		URL:       s.cfg.CheckoutBase + "?ref=" + p.Reference,
		Reference: p.Reference,
	}, nil
}

// HandleWebhook verifies the gateway signature (HMAC-SHA256 of the raw
// body, hex encoded) and applies a successful checkout to the booking.
// Retries are idempotent: an already-processed reference is acknowledged
// without a second transition.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.verifySignature(body, signature) {
		return ErrBadSignature
	}

	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ErrBadSignature
	}

	if ev.Type != "checkout.completed" {
		s.log.Debug().Str("type", ev.Type).Msg("ignoring webhook event")
		return nil
	}

	applied, err := s.payments.MarkSucceeded(ctx, ev.Reference)
	if err != nil {
		return err
	}
	if !applied {
		s.log.Info().Str("reference", ev.Reference).Msg("webhook replay, payment already processed")
		return nil
	}

	p, err := s.payments.GetByReference(ctx, ev.Reference)
	if err != nil {
		return err
	}

	if _, err := s.payer.MarkPaid(ctx, p.BookingID); err != nil {
		// The booking left confirmed state between checkout and webhook
		// (e.g. cancelled). The payment record keeps the money trail;
		// reconciliation is a manual follow-up.
		if errors.Is(err, bookingmod.ErrInvalidTransition) {
			s.log.Warn().
				Int64("booking_id", p.BookingID).
				Str("reference", ev.Reference).
				Msg("payment succeeded but booking no longer confirmed")
			return nil
		}
		return err
	}

	s.log.Info().Int64("booking_id", p.BookingID).Msg("booking marked paid")
	return nil
}

func (s *Service) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
