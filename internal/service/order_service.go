package service

import (
	"context"
	"fmt"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

// OrderService creates and lists orders. Creation assigns identity and
// timestamp here; the shape of the input is the transport layer's problem.
type OrderService interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context) []domain.Order
	ListByUser(ctx context.Context, userID string) []domain.Order
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

// Create builds an order from the request, assigns a fresh id and UTC
// creation time, applies defaults, and appends it to the ledger.
func (s *orderService) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity == nil {
			one := 1
			item.Quantity = &one
		}
		items[i] = item
	}

	status := req.Status
	if status == "" {
		status = domain.DefaultOrderStatus
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	order := domain.Order{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Items:       items,
		TotalAmount: req.TotalAmount,
		Status:      status,
		Notes:       req.Notes,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orders.Append(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return &order, nil
}

// List returns all orders in insertion order.
func (s *orderService) List(ctx context.Context) []domain.Order {
	return s.orders.All()
}

// ListByUser returns the orders whose userId equals userID exactly.
func (s *orderService) ListByUser(ctx context.Context, userID string) []domain.Order {
	return s.orders.FindByUser(userID)
}
