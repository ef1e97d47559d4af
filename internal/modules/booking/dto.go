package booking

import "time"

type CreateBookingRequest struct {
	DoulaID  int64     `json:"doula_id" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Mode     string    `json:"mode"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}
