package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
)

// Payment is the core-side record of an external checkout session.
// Reference is the opaque id shared with the gateway; the webhook
// reports back against it.
type Payment struct {
	ID        int64         `json:"id"`
	BookingID int64         `json:"booking_id" gorm:"index"`
	Reference string        `json:"reference" gorm:"uniqueIndex"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
}
