package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portaria-backend/internal/notification"
	"portaria-backend/internal/parse"
)

type testNotificationRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendTestNotification handles POST /api/notifications/test: pushes a
// test message through the fallback chain so operators can verify the
// gateway wiring.
func (h *Handler) SendTestNotification(c *gin.Context) {
	var req testNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone, err := parse.Phone(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.dispatcher.Dispatch(c.Request.Context(), notification.Message{
		To:   phone,
		Body: req.Message,
		Type: notification.TypeTest,
	})

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, newDispatchResponse(outcome))
}
