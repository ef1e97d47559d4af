package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"doulabook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/checkout", h.Checkout)
}

// RegisterPublicRoutes mounts the gateway callback; it authenticates via
// the request signature, not a user token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the booking's mother can pay")
		case errors.Is(err, ErrNotPayable):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking must be confirmed before payment")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start checkout")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable body")
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if err := h.service.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		if errors.Is(err, ErrBadSignature) {
			response.Error(c, http.StatusBadRequest, "BAD_SIGNATURE", "Invalid signature")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process webhook")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}
