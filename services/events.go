package services

import (
	"context"

	"food-ordering-api/logger"
	"food-ordering-api/models"
)

// EventPublisher ships committed order changes to a broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev models.OrderEvent) error
}

// ReviewMarker remembers reviewed orders so repeated submissions are
// turned away before touching the database.
type ReviewMarker interface {
	IsReviewed(ctx context.Context, orderID uint) (bool, error)
	MarkReviewed(ctx context.Context, orderID uint) error
}

// publish never fails the caller: the change is already committed.
func publish(ctx context.Context, p EventPublisher, log *logger.Logger, ev models.OrderEvent) {
	if p == nil {
		return
	}
	if err := p.PublishOrderEvent(ctx, ev); err != nil {
		log.Error("publish_event", logger.RequestID(ctx), "failed to publish "+string(ev.Type), err)
	}
}
