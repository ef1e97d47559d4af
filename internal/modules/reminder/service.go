package reminder

import (
	"context"
	"encoding/json"
	"time"

	"doulabook/internal/domain"
)

type ReminderRepository interface {
	CreateBatch(ctx context.Context, reminders []domain.Reminder) error
	GetPendingForUser(ctx context.Context, userID int64, now time.Time) ([]domain.Reminder, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	reminders ReminderRepository
	users     UserReader
	now       func() time.Time
}

func NewService(reminders ReminderRepository, users UserReader) *Service {
	return &Service{
		reminders: reminders,
		users:     users,
		now:       time.Now,
	}
}

type offset struct {
	before time.Duration
	phrase string
}

// Reminder fan-out relative to the booking start. Triggers already in the
// past at planning time are skipped, never retried.
var offsets = []offset{
	{24 * time.Hour, "tomorrow"},
	{time.Hour, "in 1 hour"},
	{15 * time.Minute, "in 15 minutes"},
}

type payload struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	StartsAt time.Time `json:"starts_at"`
}

// PlanForBooking computes the T-1d/T-1h/T-15m reminder rows for both
// parties of a freshly confirmed booking and persists the ones whose
// trigger time is still in the future.
func (s *Service) PlanForBooking(ctx context.Context, b *domain.Booking) error {
	now := s.now()

	motherName := s.nameOf(ctx, b.MotherID, "your client")
	doulaName := s.nameOf(ctx, b.DoulaID, "your doula")

	var rows []domain.Reminder
	for _, o := range offsets {
		triggerAt := b.StartsAt.Add(-o.before)
		if !triggerAt.After(now) {
			continue
		}

		rows = append(rows,
			s.row(b, b.MotherID, triggerAt, "Doula appointment",
				"You have an appointment with "+doulaName+" "+o.phrase+"."),
			s.row(b, b.DoulaID, triggerAt, "Client appointment",
				"You have an appointment with "+motherName+" "+o.phrase+"."),
		)
	}

	return s.reminders.CreateBatch(ctx, rows)
}

func (s *Service) row(b *domain.Booking, userID int64, triggerAt time.Time, title, body string) domain.Reminder {
	raw, _ := json.Marshal(payload{Title: title, Body: body, StartsAt: b.StartsAt})
	return domain.Reminder{
		BookingID: b.ID,
		UserID:    userID,
		TriggerAt: triggerAt,
		Payload:   raw,
	}
}

func (s *Service) nameOf(ctx context.Context, userID int64, fallback string) string {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.Name == "" {
		return fallback
	}
	return u.Name
}

// GetPending returns the user's future reminders for the device-local
// notifier to schedule.
func (s *Service) GetPending(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return s.reminders.GetPendingForUser(ctx, userID, s.now())
}
