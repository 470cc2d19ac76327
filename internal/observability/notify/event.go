package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
)

// AlertPayload captures the canonical data we emit when a municipal alert is
// published.
type AlertPayload struct {
	AlertID     string
	Title       string
	Description string
	Priority    string
	PinCode     string
	OccurredAt  time.Time
	Metadata    map[string]string
}

// Sink describes a destination capable of consuming alert notifications.
type Sink interface {
	SendAlert(ctx context.Context, payload AlertPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload AlertPayload) error

// SendAlert implements the Sink interface.
func (f SinkFunc) SendAlert(ctx context.Context, payload AlertPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
