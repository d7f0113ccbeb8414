package services

import "go.uber.org/zap"

// Routing keys of the catalog events published after successful writes.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventReviewCreated   = "review.created"
	EventReviewUpdated   = "review.updated"
	EventReviewDeleted   = "review.deleted"
)

// EventPublisher delivers catalog events to a message broker.
type EventPublisher interface {
	PublishEvent(routingKey string, payload interface{}) error
}

// publish never fails the caller; a broker outage only costs the event.
func publish(p EventPublisher, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(routingKey, payload); err != nil {
		zap.L().Warn("failed to publish catalog event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
