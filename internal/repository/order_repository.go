package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"catalog-api/internal/domain"

	"go.uber.org/zap"
)

// OrderRepository exposes the append-only order ledger. Orders live in memory
// and are flushed wholesale to the order log after every append.
//
// Append is deliberately not guarded by a lock: the service assumes a single
// writer at a time, and concurrent appends would race on both the in-memory
// slice and the on-disk rewrite (last write wins).
type OrderRepository interface {
	All() []domain.Order
	FindByUser(userID string) []domain.Order
	Append(order domain.Order) error
	Count() int
}

type orderRepository struct {
	path   string
	orders []domain.Order
}

type orderDocument struct {
	Orders []domain.Order `json:"orders"`
}

// LoadOrders reads the order log from path. Unlike the catalog, the order log
// is a cache of past writes, not a required dependency: a missing or corrupt
// file yields an empty ledger instead of an error.
func LoadOrders(path string, logger *zap.Logger) OrderRepository {
	repo := &orderRepository{path: path, orders: []domain.Order{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read order log, starting empty",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return repo
	}

	var doc orderDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn("Order log is corrupt, starting empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return repo
	}

	if doc.Orders != nil {
		repo.orders = doc.Orders
	}
	return repo
}

// All returns the ledger in insertion order.
func (r *orderRepository) All() []domain.Order {
	return r.orders
}

// FindByUser returns the subsequence of orders whose userId matches exactly.
// Matching is case-sensitive, unlike the catalog's substring filters.
func (r *orderRepository) FindByUser(userID string) []domain.Order {
	matches := []domain.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			matches = append(matches, o)
		}
	}
	return matches
}

// Append adds the order to the ledger and rewrites the entire order log.
func (r *orderRepository) Append(order domain.Order) error {
	r.orders = append(r.orders, order)
	return r.save()
}

func (r *orderRepository) Count() int {
	return len(r.orders)
}

func (r *orderRepository) save() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create order log directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(orderDocument{Orders: r.orders}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode order log: %w", err)
	}

	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write order log: %w", err)
	}

	return nil
}
