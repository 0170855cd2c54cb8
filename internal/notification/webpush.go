package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"portaria-backend/internal/model"
)

// PushSender defines the interface for sending a web push notification.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// webPushSender is the real implementation using the webpush library.
type webPushSender struct{}

func (s *webPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WebPushChannel delivers the rendered message text to the resident's
// browser subscription. It sits last in the fallback chain: a resident
// without a registered subscription simply fails the attempt.
type WebPushChannel struct {
	db      *gorm.DB
	options *webpush.Options
	sender  PushSender
}

// NewWebPushChannel creates the web push channel backed by the shared database.
func NewWebPushChannel(db *gorm.DB, options *webpush.Options) *WebPushChannel {
	return &WebPushChannel{db: db, options: options, sender: &webPushSender{}}
}

// Name identifies the channel in logs and outcomes.
func (c *WebPushChannel) Name() string { return "webpush" }

// Send pushes the message body to the resident's subscription, if any.
func (c *WebPushChannel) Send(ctx context.Context, msg Message) (int, error) {
	if msg.ResidentID == 0 {
		return 0, errors.New("message carries no resident reference")
	}

	var sub model.PushSubscription
	err := c.db.WithContext(ctx).Where("resident_id = ?", msg.ResidentID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("resident %d has no push subscription", msg.ResidentID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load push subscription: %w", err)
	}

	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := c.sender.Send([]byte(msg.Body), wpSub, c.options)
	if err != nil {
		return 0, fmt.Errorf("web push failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Expired subscriptions are dropped so later messages skip this channel fast.
	if resp.StatusCode == http.StatusGone {
		if delErr := c.db.WithContext(ctx).Delete(&sub).Error; delErr != nil {
			return resp.StatusCode, fmt.Errorf("failed to delete expired subscription %s: %w", sub.Endpoint, delErr)
		}
	}

	return resp.StatusCode, nil
}
