package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portaria-backend/internal/service"
)

type searchWithdrawalRequest struct {
	Code string `json:"code" binding:"required"`
}

// SearchWithdrawal handles POST /api/withdrawals/search: resolve a pickup
// code to its delivery so the operator can confirm against the right
// package.
func (h *Handler) SearchWithdrawal(c *gin.Context) {
	var req searchWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wf := service.NewWithdrawal(h.codeLength, h.adapter, h.dispatcher)
	d, err := wf.SubmitCode(c.Request.Context(), req.Code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDeliveryResponse(*d))
}

type confirmWithdrawalRequest struct {
	Code  string `json:"code" binding:"required"`
	Notes string `json:"notes"`
}

type confirmWithdrawalResponse struct {
	Delivery     deliveryResponse `json:"delivery"`
	Notification dispatchResponse `json:"notification"`
	Warning      string           `json:"warning,omitempty"`
}

// ConfirmWithdrawal handles POST /api/withdrawals/confirm. The store
// mutation is the durability boundary: when every notification channel
// fails the withdrawal still stands and the response carries a warning
// instead of an error.
func (h *Handler) ConfirmWithdrawal(c *gin.Context) {
	var req confirmWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	wf := service.NewWithdrawal(h.codeLength, h.adapter, h.dispatcher)
	if _, err := wf.SubmitCode(ctx, req.Code); err != nil {
		abortWithError(c, err)
		return
	}

	result, err := wf.Confirm(ctx, req.Notes)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := confirmWithdrawalResponse{
		Delivery:     newDeliveryResponse(*result.Delivery),
		Notification: newDispatchResponse(result.Notify),
	}
	if result.Degraded {
		resp.Warning = "withdrawal recorded, but the resident could not be notified on any channel"
	}
	c.JSON(http.StatusOK, resp)
}
