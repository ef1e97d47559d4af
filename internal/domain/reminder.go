package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Reminder is a planned local notification for one party of a confirmed
// booking. The core only computes trigger times and message bodies;
// delivery happens on the device, which polls its pending reminders.
type Reminder struct {
	ID        int64          `json:"id"`
	BookingID int64          `json:"booking_id" gorm:"index"`
	UserID    int64          `json:"user_id" gorm:"index"`
	TriggerAt time.Time      `json:"trigger_at"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
