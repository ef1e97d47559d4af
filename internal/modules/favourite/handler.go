package favourite

import (
	"errors"
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
	rg.POST("/favourites/toggle", h.Toggle)
	rg.GET("/favourites", h.List)
}

type toggleRequest struct {
	DoulaID int64 `json:"doula_id" binding:"required"`
}

func (h *Handler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	favourited, err := h.service.Toggle(c.Request.Context(), c.GetInt64("user_id"), req.DoulaID)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown doula")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle favourite")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favourited": favourited})
}

func (h *Handler) List(c *gin.Context) {
	favs, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load favourites")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favourites": favs})
}
