package domain

import "time"

// OrderItem is a single line in an order. Product ids are opaque and are not
// cross-checked against the catalog.
type OrderItem struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  *int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// CreateOrderRequest is the payload accepted by POST /orders.
type CreateOrderRequest struct {
	UserID      string         `json:"userId" validate:"required"`
	Items       []OrderItem    `json:"items" validate:"omitempty,dive"`
	TotalAmount *float64       `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	Status      string         `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Order is a persisted order record. Orders are append-only: once created,
// id and createdAt never change and no update or delete path exists.
type Order struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Items       []OrderItem    `json:"items"`
	TotalAmount *float64       `json:"totalAmount,omitempty"`
	Status      string         `json:"status"`
	Notes       *string        `json:"notes,omitempty"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// DefaultOrderStatus is assigned when a create request omits status. The
// status is free-form; no state machine is enforced.
const DefaultOrderStatus = "pending"
