package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/repo"
)

// KitchenService backs the staff order board.
type KitchenService struct {
	Orders       *OrderService
	Hub          *events.Hub
	PollInterval time.Duration
}

func (s *KitchenService) Active(ctx context.Context) ([]models.Order, error) {
	return s.Orders.Active(ctx)
}

// List returns one page of orders matching f and the number of matches
// across all pages.
func (s *KitchenService) List(ctx context.Context, f repo.OrderFilter) ([]models.Order, int64, error) {
	orders, err := s.Orders.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Orders.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Counts is the per-status tally over all orders shown above the board.
func (s *KitchenService) Counts(ctx context.Context) (map[models.OrderStatus]int64, error) {
	return s.Orders.StatusCounts(ctx)
}

func (s *KitchenService) Advance(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.Orders.Advance(ctx, id)
}

func (s *KitchenService) SetStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	return s.Orders.SetStatus(ctx, id, target)
}

// Stream calls fn with the active orders until ctx ends or fn fails.
func (s *KitchenService) Stream(ctx context.Context, fn func([]models.Order) error) error {
	return Watch(ctx, s.Active, s.Hub, s.PollInterval, fn)
}

// ActionLabel is the board button text for an order in status st; empty
// for completed orders.
func ActionLabel(st models.OrderStatus) string {
	switch st {
	case models.OrderStatusPending:
		return "Start Cooking"
	case models.OrderStatusCooking:
		return "Mark Ready"
	case models.OrderStatusReady:
		return "Complete Order"
	}
	return ""
}
