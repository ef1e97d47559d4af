package domain

import "time"

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
	BookingPaid      BookingStatus = "paid"
)

// Terminal reports whether no further transition may leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingDeclined || s == BookingCancelled || s == BookingPaid
}

// Blocking reports whether a booking in this status occupies its time slot.
// Declined and cancelled bookings free the slot.
func (s BookingStatus) Blocking() bool {
	return s == BookingRequested || s == BookingConfirmed || s == BookingPaid
}

type BookingMode string

const (
	ModeOnline   BookingMode = "online"
	ModeInPerson BookingMode = "in_person"
)

type Booking struct {
	ID                 int64         `json:"id"`
	MotherID           int64         `json:"mother_id" validate:"required"`
	DoulaID            int64         `json:"doula_id" validate:"required"`
	StartsAt           time.Time     `json:"starts_at" validate:"required"`
	EndsAt             time.Time     `json:"ends_at" validate:"required"`
	Mode               BookingMode   `json:"mode"`
	Status             BookingStatus `json:"status"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
}

// Overlaps tests half-open interval overlap [StartsAt, EndsAt) against
// [start, end). Intervals touching at an endpoint do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndsAt) && end.After(b.StartsAt)
}
