package review

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment,omitempty"`
}

type CanReviewResponse struct {
	Eligible  bool   `json:"eligible"`
	BookingID *int64 `json:"booking_id"`
}
