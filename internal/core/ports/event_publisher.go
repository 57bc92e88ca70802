package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// EventType is the discriminator of a real-time event.
type EventType string

const (
	EventNewAssignment        EventType = "NEW_ASSIGNMENT"
	EventDeliveryStatusUpdate EventType = "DELIVERY_STATUS_UPDATE"
)

// EventData is denormalized so a client can render a toast without a round trip.
type EventData struct {
	AssignmentID   string `json:"assignmentId"`
	ProductName    string `json:"productName"`
	DriverName     string `json:"driverName,omitempty"`
	Destination    string `json:"destination,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
}

// Event is the JSON object pushed to subscribers.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// EventPublisher delivers an event to every open subscription of recipient.
// It must not block on slow subscribers; with no subscribers the event is dropped.
type EventPublisher interface {
	Publish(ctx context.Context, recipient kernel.Identity, event Event) error
}
