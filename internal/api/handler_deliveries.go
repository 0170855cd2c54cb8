package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portaria-backend/internal/service"
)

type registerDeliveryRequest struct {
	ResidentID int64  `json:"resident_id" binding:"required"`
	Notes      string `json:"notes"`
	PhotoURL   string `json:"photo_url"`
}

// RegisterDelivery handles POST /api/deliveries: a staff member logs an
// incoming package. The arrival notice goes out asynchronously.
func (h *Handler) RegisterDelivery(c *gin.Context) {
	var req registerDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.registration.Register(c.Request.Context(), service.RegisterRequest{
		ResidentID: req.ResidentID,
		Notes:      req.Notes,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newDeliveryResponse(*d))
}

// ListPendingDeliveries handles GET /api/deliveries/pending. The response
// is the reconciled view over the remote store and the local cache.
func (h *Handler) ListPendingDeliveries(c *gin.Context) {
	condominiumID, err := strconv.ParseInt(c.Query("condominium_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid condominium ID"})
		return
	}

	deliveries, err := h.adapter.ListPending(c.Request.Context(), condominiumID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, newDeliveryResponse(d))
	}
	c.JSON(http.StatusOK, response)
}
