package model

import "github.com/google/uuid"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is pushed to the kitchen board of the order's restaurant.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber int       `json:"order_number"`
	Status      string    `json:"status"`
}
