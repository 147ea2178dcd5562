package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_bites/internal/cart"
	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/menu"
	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/repo"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

const (
	PaymentUPI  = "upi"
	PaymentCash = "cash"

	tokenSpace    = 1000
	tokenAttempts = 16
)

type OrderService struct {
	Repo   *repo.GormRepo
	Menu   *menu.Catalog
	Events events.Publisher

	// Now and Token are replaced in tests.
	Now   func() time.Time
	Token func() int
}

// ParsePaymentMethod accepts upi or cash in any case; empty means upi.
func ParsePaymentMethod(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", PaymentUPI:
		return PaymentUPI, nil
	case PaymentCash:
		return PaymentCash, nil
	}
	return "", fmt.Errorf("%w: unsupported payment method %q", ErrValidation, s)
}

// PlaceOrder converts the session cart into a pending order and empties
// the cart in the same transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID uuid.UUID, paymentMethod string) (*models.Order, error) {
	pm, err := ParsePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	active, err := s.Repo.ActiveTokens(ctx)
	if err != nil {
		return nil, err
	}
	token, err := s.drawToken(active)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.CheckoutCart(ctx, sessionID, func(lines []models.CartItem) (*models.Order, error) {
		items := hydrate(s.Menu, lines)
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
		}
		return buildOrder(items, token, pm, s.now()), nil
	})
	if err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

func buildOrder(items []cart.Item, token, paymentMethod string, at time.Time) *models.Order {
	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, models.OrderItem{
			MenuItemID:  it.ID,
			Name:        it.Name,
			Description: it.Description,
			Category:    string(it.Category),
			ImageURL:    it.ImageURL,
			IsVeg:       it.IsVeg,
			IsSpicy:     it.IsSpicy,
			Price:       it.Price,
			Quantity:    uint(it.Quantity),
		})
	}
	return &models.Order{
		TokenNumber:   token,
		Items:         lines,
		Total:         cart.Total(items),
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     at,
	}
}

// drawToken picks a random token not held by an unfinished order. After a
// few random misses it walks the token space from the last draw.
func (s *OrderService) drawToken(active map[string]struct{}) (string, error) {
	if len(active) >= tokenSpace {
		return "", fmt.Errorf("%w: all order tokens are in use", ErrConflict)
	}

	n := 0
	for i := 0; i < tokenAttempts; i++ {
		n = s.token()
		if _, taken := active[formatToken(n)]; !taken {
			return formatToken(n), nil
		}
	}
	for i := 1; i < tokenSpace; i++ {
		t := formatToken(n + i)
		if _, taken := active[t]; !taken {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: all order tokens are in use", ErrConflict)
}

func formatToken(n int) string {
	n %= tokenSpace
	if n < 0 {
		n += tokenSpace
	}
	return fmt.Sprintf("%03d", n)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, f repo.OrderFilter) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, f)
}

func (s *OrderService) Count(ctx context.Context, f repo.OrderFilter) (int64, error) {
	return s.Repo.CountOrders(ctx, f)
}

func (s *OrderService) StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error) {
	return s.Repo.StatusCounts(ctx)
}

// Active lists unfinished orders, newest first.
func (s *OrderService) Active(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, repo.OrderFilter{ExcludeCompleted: true})
}

// SetStatus moves the order to target, which must be the immediate
// successor of its current status.
func (s *OrderService) SetStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}
	return s.transition(ctx, id, func(cur models.OrderStatus) (models.OrderStatus, error) {
		if cur.Final() {
			return "", ErrFinalStatus
		}
		if !cur.CanTransitionTo(target) {
			return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, target)
		}
		return target, nil
	})
}

func (s *OrderService) Advance(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, id, func(cur models.OrderStatus) (models.OrderStatus, error) {
		next, ok := cur.Next()
		if !ok {
			return "", ErrFinalStatus
		}
		return next, nil
	})
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, decide func(models.OrderStatus) (models.OrderStatus, error)) (*models.Order, error) {
	o, err := s.Repo.UpdateOrderStatus(ctx, id, decide)
	if err != nil {
		return nil, translate(err)
	}
	s.publish(ctx, events.OrderStatusChanged, o)
	return o, nil
}

// publish never fails the caller: the order is already committed.
func (s *OrderService) publish(ctx context.Context, typ string, o *models.Order) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.FromOrder(typ, o, s.now())); err != nil {
		logging.FromContext(ctx).Warn("publish_error", "event", typ, "order_id", o.ID, "error", err)
	}
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) token() int {
	if s.Token != nil {
		return s.Token()
	}
	return rand.IntN(tokenSpace)
}
