package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderReviewed      EventType = "order.reviewed"
)

// OrderEvent is published after a committed change to an order.
type OrderEvent struct {
	Type         EventType       `json:"type"`
	OrderID      uint            `json:"order_id"`
	CustomerID   uint            `json:"customer_id"`
	RestaurantID uint            `json:"restaurant_id"`
	FromStatus   OrderStatus     `json:"from_status,omitempty"`
	Status       OrderStatus     `json:"status"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
	Rating       int             `json:"rating,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// NewOrderEvent fills the common fields from o.
func NewOrderEvent(t EventType, o *Order) OrderEvent {
	return OrderEvent{
		Type:         t,
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		FinalAmount:  o.FinalAmount(),
		Rating:       o.ReviewRating,
		OccurredAt:   time.Now().UTC(),
	}
}
