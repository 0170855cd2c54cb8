package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"portaria-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, rateLimitPerSec float64, cacheTTL time.Duration) *gin.Engine {
	r := gin.Default()

	if rateLimitPerSec <= 0 {
		rateLimitPerSec = 10
	}
	rateLimiter := mw.RateLimiter(rate.Limit(rateLimitPerSec), 5)

	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Deliveries
		api.POST("/deliveries", h.RegisterDelivery)
		api.GET("/deliveries/pending", h.ListPendingDeliveries)

		// Withdrawal workflow
		api.POST("/withdrawals/search", h.SearchWithdrawal)
		api.POST("/withdrawals/confirm", h.ConfirmWithdrawal)

		// Resident lookup for the registration form; slow-changing, cached.
		api.GET("/residents", caching, h.SearchResidents)

		// Push subscriptions
		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		// Gateway wiring check
		api.POST("/notifications/test", h.SendTestNotification)
	}

	return r
}
