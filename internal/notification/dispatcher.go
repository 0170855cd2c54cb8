package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Channel is one concrete transport in the fallback chain: a function
// from message to HTTP-level outcome. Success means a 2xx status.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) (status int, err error)
}

// Attempt records one channel try for logging and for the caller.
type Attempt struct {
	Channel string        `json:"channel"`
	Status  int           `json:"status"`
	Success bool          `json:"success"`
	Latency time.Duration `json:"latency"`
	Err     string        `json:"error,omitempty"`
}

// Outcome is the result of dispatching one message through the chain.
type Outcome struct {
	Success  bool      `json:"success"`
	Channel  string    `json:"channel,omitempty"`
	Attempts []Attempt `json:"attempts"`
}

// Dispatcher walks an ordered chain of channels, stopping at the first
// success. Every attempt is bounded by the per-attempt timeout and logged
// with channel identity, status and latency. All-channels-failed is the
// caller's problem to surface; the dispatcher never retries.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher over the given ordered channels.
func NewDispatcher(timeout time.Duration, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, timeout: timeout}
}

// Dispatch sends the message through the chain.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	outcome := Outcome{}
	for _, ch := range d.channels {
		attempt := d.attempt(ctx, ch, msg)
		outcome.Attempts = append(outcome.Attempts, attempt)

		if attempt.Success {
			outcome.Success = true
			outcome.Channel = ch.Name()
			return outcome
		}
	}
	log.Printf("All %d notification channels failed for %s message to %s", len(d.channels), msg.Type, msg.To)
	return outcome
}

func (d *Dispatcher) attempt(ctx context.Context, ch Channel, msg Message) Attempt {
	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	status, err := ch.Send(attemptCtx, msg)
	latency := time.Since(start)

	attempt := Attempt{
		Channel: ch.Name(),
		Status:  status,
		Success: err == nil && status >= 200 && status < 300,
		Latency: latency,
	}
	if err != nil {
		attempt.Err = err.Error()
		log.Printf("Notification attempt via %s failed after %s: %v", ch.Name(), latency, err)
		return attempt
	}
	if !attempt.Success {
		log.Printf("Notification attempt via %s returned status %d after %s", ch.Name(), status, latency)
		return attempt
	}
	log.Printf("Notification delivered via %s (status %d, %s)", ch.Name(), status, latency)
	return attempt
}

// WebhookChannel posts the message as JSON to a gateway endpoint.
type WebhookChannel struct {
	name   string
	url    string
	client *http.Client
}

// NewWebhookChannel creates a channel for one webhook endpoint. The
// per-attempt deadline comes from the dispatcher's context, so the
// client itself carries no timeout.
func NewWebhookChannel(name, url string) *WebhookChannel {
	return &WebhookChannel{name: name, url: url, client: &http.Client{}}
}

// Name identifies the channel in logs and outcomes.
func (c *WebhookChannel) Name() string { return c.name }

// Send posts the message document and reports the HTTP status.
func (c *WebhookChannel) Send(ctx context.Context, msg Message) (int, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
