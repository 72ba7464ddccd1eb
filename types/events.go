package types

import (
	"errors"
	"fmt"
	"time"
)

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is published on the store's order channel.
type OrderEvent struct {
	ID             string         `json:"id"`
	Type           OrderEventType `json:"type"`
	OrderID        string         `json:"order_id"`
	StoreID        string         `json:"store_id"`
	UserID         string         `json:"user_id"`
	Status         OrderStatus    `json:"status"`
	PreviousStatus OrderStatus    `json:"previous_status,omitempty"`
	Total          string         `json:"total,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Validate checks the fields every consumer relies on.
func (e OrderEvent) Validate() error {
	switch {
	case e.Type != OrderEventCreated && e.Type != OrderEventStatusChanged:
		return fmt.Errorf("unknown order event type %q", e.Type)
	case e.OrderID == "":
		return errors.New("order event without order id")
	case e.StoreID == "":
		return errors.New("order event without store id")
	}
	return nil
}
