package reminder

import (
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
	rg.GET("/reminders", h.Pending)
}

func (h *Handler) Pending(c *gin.Context) {
	reminders, err := h.service.GetPending(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reminders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reminders": reminders})
}
