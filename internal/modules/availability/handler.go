package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doulabook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the doula-only write endpoint; the caller wraps
// the group with auth + role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/availability/weekly", h.SetWeekly)
}

// RegisterPublicRoutes mounts the read endpoint mothers use when picking
// a slot.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability/weekly/:doula_id", h.GetWeekly)
}

func (h *Handler) SetWeekly(c *gin.Context) {
	var inputs []WindowInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	doulaID := c.GetInt64("user_id")
	if err := h.service.SetWeekly(c.Request.Context(), doulaID, inputs); err != nil {
		var dayErr *DayError
		switch {
		case errors.As(err, &dayErr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				"Invalid availability window", gin.H{
					"day_of_week": dayErr.Day,
					"reason":      dayErr.Reason,
				})
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability windows")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save availability")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) GetWeekly(c *gin.Context) {
	doulaID, err := strconv.ParseInt(c.Param("doula_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid doula ID")
		return
	}

	windows, err := h.service.GetWeekly(c.Request.Context(), doulaID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"windows": windows})
}
