package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doulabook/internal/domain"
	"doulabook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/by-mother/me", h.MyBookingsAsMother)
	rg.GET("/bookings/by-doula/me", h.MyBookingsAsDoula)
	rg.POST("/bookings/:id/status", h.UpdateStatus)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	motherID := c.GetInt64("user_id")
	b, err := h.service.RequestBooking(c.Request.Context(), motherID, req)
	if err != nil {
		var slotErr *SlotUnavailableError
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range or participants")
		case errors.As(err, &slotErr):
			response.ErrorWithDetails(c, http.StatusConflict, "SLOT_UNAVAILABLE",
				"The selected time overlaps an existing booking", gin.H{
					"conflict_starts_at": slotErr.ConflictStart,
					"conflict_ends_at":   slotErr.ConflictEnd,
				})
		case errors.Is(err, ErrOutsideAvailability):
			response.Error(c, http.StatusConflict, "OUTSIDE_AVAILABILITY",
				"The selected time is outside the doula's availability")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) MyBookingsAsMother(c *gin.Context) {
	bookings, err := h.service.GetByMother(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) MyBookingsAsDoula(c *gin.Context) {
	bookings, err := h.service.GetByDoula(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.SetStatus(
		c.Request.Context(),
		bookingID,
		c.GetInt64("user_id"),
		c.GetString("role"),
		domain.BookingStatus(req.Status),
		req.Reason,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Action not allowed for this actor")
		case errors.Is(err, ErrInvalidTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Action not allowed in the current booking state")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}
