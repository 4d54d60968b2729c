// Package notify delivers emergency alerts to contacts via webhook or log.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/suraksha-app/suraksha/internal/model"
)

// Message is a single outbound notification.
type Message struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Notifier delivers messages to emergency contacts.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// ComposeSOS builds the SOS alert message for one contact. The location line
// carries an "(approximate)" suffix when the position came from the fallback
// rather than a live fix.
func ComposeSOS(contact model.EmergencyContact, userName string, e model.SOSEvent) Message {
	suffix := ""
	if e.Approximate {
		suffix = " (approximate)"
	}
	body := fmt.Sprintf(`Emergency SOS alert triggered!

User: %s
Time: %s
Location: https://www.google.com/maps?q=%v,%v%s

This is an automated emergency alert. The user may be in danger and requires immediate assistance.`,
		userName, e.TriggeredAt.Format(time.RFC1123),
		e.Location.Lat, e.Location.Lng, suffix,
	)
	return Message{
		To:      contact.Email,
		Subject: "EMERGENCY SOS ALERT",
		Body:    body,
		SentAt:  e.TriggeredAt,
	}
}

// WebhookNotifier posts messages as JSON to a configured webhook URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhook creates a WebhookNotifier for the given URL.
func NewWebhook(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return eris.Wrap(err, "notify: marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "notify: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "notify: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes messages to the structured log instead of delivering
// them. It is the default when no webhook is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, msg Message) error {
	zap.L().Warn("notify: alert (log only)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// FromWebhookURL picks the webhook notifier when a URL is configured and the
// log notifier otherwise.
func FromWebhookURL(url string) Notifier {
	if url == "" {
		return LogNotifier{}
	}
	return NewWebhook(url)
}
