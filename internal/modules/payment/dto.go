package payment

type CheckoutRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	Reference string `json:"reference"`
}

// WebhookEvent is the gateway callback body. Only checkout.completed
// events drive the booking lifecycle; other types are acknowledged and
// ignored.
type WebhookEvent struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
}
