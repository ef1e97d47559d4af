package chat

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
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/messages/send", h.Send)
	rg.GET("/messages/thread", h.Thread)
	rg.GET("/messages/inbox", h.Inbox)
	rg.GET("/messages/unread-count", h.UnreadCount)
	rg.POST("/messages/mark-read", h.MarkRead)
}

type sendRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req.ReceiverID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Receiver not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Messages go between a mother and a doula")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		}
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// Thread returns the full conversation between the viewer and the other
// party named by the with query parameter.
func (h *Handler) Thread(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Query("with"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid with parameter")
		return
	}

	motherID, doulaID, ok := h.pair(c, otherID)
	if !ok {
		return
	}

	msgs, err := h.service.Thread(c.Request.Context(), motherID, doulaID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load thread")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) Inbox(c *gin.Context) {
	threads, err := h.service.Inbox(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load inbox")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"threads": threads})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count unread messages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count, "online": h.hub.OnlineCount()})
}

type markReadRequest struct {
	WithID int64 `json:"with_id" binding:"required"`
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	motherID, doulaID, ok := h.pair(c, req.WithID)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), motherID, doulaID, domain.UserRole(c.GetString("role"))); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark messages read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

// pair resolves the mother/doula pair from the viewer's role and the
// other party's id. Writes the error response itself when the role is
// not part of a conversation.
func (h *Handler) pair(c *gin.Context, otherID int64) (motherID, doulaID int64, ok bool) {
	userID := c.GetInt64("user_id")
	switch domain.UserRole(c.GetString("role")) {
	case domain.RoleMother:
		return userID, otherID, true
	case domain.RoleDoula:
		return otherID, userID, true
	default:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only mothers and doulas have conversations")
		return 0, 0, false
	}
}
