package doula

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doulabook/internal/pkg/response"
	"doulabook/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/doulas", h.Search)
	rg.GET("/doulas/:id", h.GetByID)
}

// RegisterRoutes mounts the doula-only profile endpoint; the caller wraps
// the group with auth + role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/doulas/me", h.UpdateProfile)
}

func (h *Handler) Search(c *gin.Context) {
	f := repository.DoulaFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		SortBy:   c.Query("sort_by"),
		// only verified doulas by default
		Verified: c.DefaultQuery("verified", "true") == "true",
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}

	doulas, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search doulas")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"doulas": doulas})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid doula ID")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Doula not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load doula")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"doula": u})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile data")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Doula not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"doula": u})
}
