package booking

import (
	"context"
	"time"

	"doulabook/internal/domain"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	CreateIfSlotFree(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindConflict(ctx context.Context, doulaID int64, start, end time.Time) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMotherID(ctx context.Context, motherID int64) ([]domain.Booking, error)
	GetByDoulaID(ctx context.Context, doulaID int64) ([]domain.Booking, error)
	UpdateStatusIf(ctx context.Context, bookingID int64, from, to domain.BookingStatus) (bool, error)
	CancelIf(ctx context.Context, bookingID int64, from domain.BookingStatus, reason string) (bool, error)
}

// AvailabilityReader resolves a doula's window for one day of week.
type AvailabilityReader interface {
	GetWindow(ctx context.Context, doulaID int64, dayOfWeek int) (*domain.AvailabilityWindow, error)
}

// UserReader validates the participants of a booking.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ReminderPlanner schedules the reminder fan-out after a confirmation.
// Planning failures must not fail the transition.
type ReminderPlanner interface {
	PlanForBooking(ctx context.Context, b *domain.Booking) error
}
