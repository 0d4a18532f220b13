package order

import (
	"github.com/bookstore/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// OrderPlacedEvent is emitted when a checkout commits
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID      int    `json:"order_id"`
	CustomerName string `json:"customer_name"`
	ItemCount    int    `json:"item_count"`
	Total        string `json:"total"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent from a committed order
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced),
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		ItemCount:       len(o.Lines),
		Total:           o.Total.StringFixed(2),
	}
}
