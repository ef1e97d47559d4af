package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"doulabook/internal/domain"
	"doulabook/internal/pkg/metrics"
	"doulabook/internal/repository"
)

type Service struct {
	bookings     BookingRepository
	availability AvailabilityReader
	users        UserReader
	reminders    ReminderPlanner
	log          zerolog.Logger
}

func NewService(
	bookings BookingRepository,
	availability AvailabilityReader,
	users UserReader,
	reminders ReminderPlanner,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		availability: availability,
		users:        users,
		reminders:    reminders,
		log:          log,
	}
}

// RequestBooking validates the proposed slot against the doula's weekly
// availability and existing bookings, then creates the booking in
// requested state. The conflict check is repeated transactionally inside
// the insert, so concurrent overlapping requests cannot both succeed.
func (s *Service) RequestBooking(ctx context.Context, motherID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrValidation
	}
	if req.StartsAt.Before(time.Now()) {
		return nil, ErrValidation
	}

	mode := domain.BookingMode(req.Mode)
	if mode == "" {
		mode = domain.ModeOnline
	}
	if mode != domain.ModeOnline && mode != domain.ModeInPerson {
		return nil, ErrValidation
	}

	mother, err := s.users.GetByID(ctx, motherID)
	if err != nil || mother.Role != domain.RoleMother {
		return nil, ErrValidation
	}
	doula, err := s.users.GetByID(ctx, req.DoulaID)
	if err != nil || doula.Role != domain.RoleDoula {
		return nil, ErrValidation
	}

	start := req.StartsAt.UTC()
	end := req.EndsAt.UTC()

	ok, err := s.withinAvailability(ctx, req.DoulaID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.BookingConflicts.Inc()
		return nil, ErrOutsideAvailability
	}

	b := &domain.Booking{
		MotherID: motherID,
		DoulaID:  req.DoulaID,
		StartsAt: start,
		EndsAt:   end,
		Mode:     mode,
		Status:   domain.BookingRequested,
	}

	conflict, err := s.bookings.CreateIfSlotFree(ctx, b)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.BookingConflicts.Inc()
			if conflict == nil {
				// Lost to the database constraint rather than the
				// re-check; look the winner up to name the interval.
				conflict, _ = s.bookings.FindConflict(ctx, req.DoulaID, start, end)
			}
			if conflict != nil {
				return nil, &SlotUnavailableError{
					ConflictStart: conflict.StartsAt,
					ConflictEnd:   conflict.EndsAt,
				}
			}
			return nil, &SlotUnavailableError{ConflictStart: start, ConflictEnd: end}
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	return b, nil
}

// withinAvailability checks the proposed interval falls entirely inside
// an active window for that day of week. Windows are within-day, so the
// interval must not cross a UTC day boundary; an end exactly at the next
// midnight counts as "24:00" on the start day.
func (s *Service) withinAvailability(ctx context.Context, doulaID int64, start, end time.Time) (bool, error) {
	nextMidnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var endHM string
	switch {
	case end.Equal(nextMidnight):
		endHM = "24:00"
	case end.Before(nextMidnight):
		endHM = end.Format("15:04")
	default:
		return false, nil
	}

	w, err := s.availability.GetWindow(ctx, doulaID, domain.WeekdayIndex(start.Weekday()))
	if err != nil {
		return false, err
	}
	if w == nil || !w.Active {
		return false, nil
	}

	// Zero-padded HH:MM strings order correctly lexicographically.
	startHM := start.Format("15:04")
	return startHM >= w.StartTime && endHM <= w.EndTime, nil
}

// SetStatus applies an actor-gated status transition:
//
//	requested  -> confirmed | declined   (doula only)
//	requested  -> cancelled              (either party, before start)
//	confirmed  -> cancelled              (either party, before start)
//
// confirmed -> paid is reserved for the payment webhook (MarkPaid).
// Every transition is a compare-and-set on the expected current status,
// so a stale client racing another actor gets ErrInvalidTransition.
func (s *Service) SetStatus(ctx context.Context, bookingID, actorID int64, actorRole string, newStatus domain.BookingStatus, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	switch newStatus {
	case domain.BookingConfirmed, domain.BookingDeclined:
		if actorRole != string(domain.RoleDoula) || actorID != b.DoulaID {
			return nil, ErrForbidden
		}
		applied, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingRequested, newStatus)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, ErrInvalidTransition
		}
		if newStatus == domain.BookingConfirmed {
			s.planReminders(ctx, bookingID)
		}

	case domain.BookingCancelled:
		if actorID != b.MotherID && actorID != b.DoulaID {
			return nil, ErrForbidden
		}
		if b.Status != domain.BookingRequested && b.Status != domain.BookingConfirmed {
			return nil, ErrInvalidTransition
		}
		// Conservative policy: either party may cancel, but only before
		// the booking starts.
		if !time.Now().Before(b.StartsAt) {
			return nil, ErrInvalidTransition
		}
		applied, err := s.bookings.CancelIf(ctx, bookingID, b.Status, reason)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, ErrInvalidTransition
		}

	case domain.BookingPaid:
		// Only the payment confirmation callback moves a booking to paid.
		return nil, ErrForbidden

	default:
		return nil, ErrValidation
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// MarkPaid moves a confirmed booking to paid. Called by the payment
// module when the gateway webhook reports success.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	applied, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingConfirmed, domain.BookingPaid)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) planReminders(ctx context.Context, bookingID int64) {
	if s.reminders == nil {
		return
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		s.log.Error().Err(err).Int64("booking_id", bookingID).Msg("reload booking for reminders")
		return
	}
	if err := s.reminders.PlanForBooking(ctx, b); err != nil {
		s.log.Error().Err(err).Int64("booking_id", bookingID).Msg("plan reminders")
	}
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetByMother(ctx context.Context, motherID int64) ([]domain.Booking, error) {
	return s.bookings.GetByMotherID(ctx, motherID)
}

func (s *Service) GetByDoula(ctx context.Context, doulaID int64) ([]domain.Booking, error) {
	return s.bookings.GetByDoulaID(ctx, doulaID)
}
