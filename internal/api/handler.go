package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portaria-backend/internal/model"
	"portaria-backend/internal/notification"
	"portaria-backend/internal/service"
	"portaria-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	adapter      *store.Adapter
	registration *service.Registration
	dispatcher   service.Dispatcher
	db           *gorm.DB
	webpush      *webpush.Options
	codeLength   int
}

// NewHandler creates a new API handler.
func NewHandler(adapter *store.Adapter, registration *service.Registration, dispatcher service.Dispatcher, db *gorm.DB, webpushOptions *webpush.Options, codeLength int) *Handler {
	return &Handler{
		adapter:      adapter,
		registration: registration,
		dispatcher:   dispatcher,
		db:           db,
		webpush:      webpushOptions,
		codeLength:   codeLength,
	}
}

// abortWithError maps workflow and store errors onto HTTP responses.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCode) || errors.Is(err, service.ErrNoDeliverySelected):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
	case errors.Is(err, store.ErrAlreadyWithdrawn):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "delivery already withdrawn"})
	case errors.Is(err, store.ErrStoreUnavailable):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// residentResponse is the resident as exposed over the API.
type residentResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role,omitempty"`
	Block string `json:"block,omitempty"`
	Unit  string `json:"unit"`
}

// deliveryResponse is the flattened delivery structure for API responses.
type deliveryResponse struct {
	ID              int64            `json:"id"`
	PickupCode      string           `json:"pickupCode"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	PhotoURL        string           `json:"photoUrl,omitempty"`
	RegisteredAt    time.Time        `json:"registeredAt"`
	WithdrawnAt     *time.Time       `json:"withdrawnAt,omitempty"`
	WithdrawalNotes string           `json:"withdrawalNotes,omitempty"`
	Resident        residentResponse `json:"resident"`
}

func newResidentResponse(r model.Resident) residentResponse {
	return residentResponse{
		ID:    r.ID,
		Name:  r.Name,
		Phone: r.Phone,
		Role:  r.Role,
		Block: r.Block,
		Unit:  r.Unit,
	}
}

func newDeliveryResponse(d model.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:              d.ID,
		PickupCode:      d.PickupCode,
		Status:          d.Status,
		Notes:           d.Notes,
		PhotoURL:        d.PhotoURL,
		RegisteredAt:    d.RegisteredAt,
		WithdrawnAt:     d.WithdrawnAt,
		WithdrawalNotes: d.WithdrawalNotes,
		Resident:        newResidentResponse(d.Resident),
	}
}

// dispatchResponse summarizes a notification outcome for API callers.
type dispatchResponse struct {
	Success  bool                   `json:"success"`
	Channel  string                 `json:"channel,omitempty"`
	Attempts []notification.Attempt `json:"attempts"`
}

func newDispatchResponse(o notification.Outcome) dispatchResponse {
	return dispatchResponse{Success: o.Success, Channel: o.Channel, Attempts: o.Attempts}
}
