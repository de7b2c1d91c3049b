package domain

import (
	"context"
	"time"
)

// AlertAction names the change an alert event describes.
type AlertAction string

const (
	AlertCreated AlertAction = "created"
	AlertUpdated AlertAction = "updated"
	AlertDeleted AlertAction = "deleted"
)

// AlertEvent is published after every change to a session's alerts.
type AlertEvent struct {
	Action     AlertAction `json:"action"`
	Session    string      `json:"session"`
	Alert      Alert       `json:"alert"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewAlertEvent stamps an event with the current time.
func NewAlertEvent(action AlertAction, session string, alert Alert) AlertEvent {
	return AlertEvent{Action: action, Session: session, Alert: alert, OccurredAt: Now()}
}

// AlertPublisher delivers alert events to downstream consumers.
type AlertPublisher interface {
	PublishAlertEvents(ctx context.Context, events []AlertEvent) error
}
