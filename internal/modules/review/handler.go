package review

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews/can-review", h.CanReview)
	rg.POST("/reviews", h.Create)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews/by-doula/:doula_id", h.ByDoula)
}

func (h *Handler) CanReview(c *gin.Context) {
	doulaID, err := strconv.ParseInt(c.Query("doula_id"), 10, 64)
	if err != nil || doulaID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "doula_id is required")
		return
	}

	res, err := h.service.CanReview(c.Request.Context(), c.GetInt64("user_id"), doulaID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check review eligibility")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotEligible):
			response.Error(c, http.StatusForbidden, "NOT_ELIGIBLE", "You can only review a paid booking once")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) ByDoula(c *gin.Context) {
	doulaID, err := strconv.ParseInt(c.Param("doula_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid doula ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, err := h.service.GetByDoula(c.Request.Context(), doulaID, limit, offset)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid doula ID")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}
