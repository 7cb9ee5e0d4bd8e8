package services

import (
	"context"
	"time"

	"productsapi/internal/models"
)

// Product event types.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted             = "product.deleted"
)

// ProductEvent describes a completed product mutation.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  uint            `json:"product_id"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event ProductEvent) error
}

// JSONPublisher is satisfied by pkg/rabbitmq.Client.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, routingType string, payload any) error
}

// QueuePublisher publishes product events as JSON messages.
type QueuePublisher struct {
	client JSONPublisher
}

// NewQueuePublisher wraps a JSON publisher as an EventPublisher.
func NewQueuePublisher(client JSONPublisher) *QueuePublisher {
	return &QueuePublisher{client: client}
}

func (p *QueuePublisher) Publish(ctx context.Context, event ProductEvent) error {
	return p.client.PublishJSON(ctx, event.Type, event)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }
