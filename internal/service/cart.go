package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/campus_bites/internal/cart"
	"github.com/Skotchmaster/campus_bites/internal/menu"
	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
	Menu *menu.Catalog
}

func (s *CartService) Get(ctx context.Context, sessionID uuid.UUID) ([]cart.Item, error) {
	rows, err := s.Repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return hydrate(s.Menu, rows), nil
}

func (s *CartService) Add(ctx context.Context, sessionID uuid.UUID, menuItemID string, qty int) ([]cart.Item, error) {
	if qty < 1 || qty > cart.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, cart.MaxQuantity)
	}
	m, err := s.Menu.Get(menuItemID)
	if err != nil {
		return nil, translate(err)
	}

	return s.mutate(ctx, sessionID, func(items []cart.Item) ([]cart.Item, error) {
		if cur, ok := cart.Find(items, m.ID); ok && qty > cart.MaxQuantity-cur.Quantity {
			return nil, tooMany(m.ID)
		}
		return cart.AddN(items, m, qty), nil
	})
}

// UpdateQuantity shifts the line's quantity by delta and drops the line
// once it reaches zero.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, menuItemID string, delta int) ([]cart.Item, error) {
	return s.mutate(ctx, sessionID, func(items []cart.Item) ([]cart.Item, error) {
		cur, ok := cart.Find(items, menuItemID)
		if !ok {
			return nil, fmt.Errorf("%w: item %s is not in the cart", ErrNotFound, menuItemID)
		}
		if delta > cart.MaxQuantity-cur.Quantity {
			return nil, tooMany(menuItemID)
		}
		return cart.UpdateQuantity(items, menuItemID, delta), nil
	})
}

func (s *CartService) Remove(ctx context.Context, sessionID uuid.UUID, menuItemID string) ([]cart.Item, error) {
	return s.mutate(ctx, sessionID, func(items []cart.Item) ([]cart.Item, error) {
		if _, ok := cart.Find(items, menuItemID); !ok {
			return nil, fmt.Errorf("%w: item %s is not in the cart", ErrNotFound, menuItemID)
		}
		return cart.Remove(items, menuItemID), nil
	})
}

func tooMany(menuItemID string) error {
	return fmt.Errorf("%w: at most %d of item %s per order", ErrValidation, cart.MaxQuantity, menuItemID)
}

func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, sessionID)
}

func (s *CartService) mutate(ctx context.Context, sessionID uuid.UUID, fn func([]cart.Item) ([]cart.Item, error)) ([]cart.Item, error) {
	rows, err := s.Repo.UpdateCart(ctx, sessionID, func(cur []models.CartItem) ([]models.CartItem, error) {
		next, err := fn(hydrate(s.Menu, cur))
		if err != nil {
			return nil, err
		}
		return toRows(next), nil
	})
	if err != nil {
		return nil, err
	}
	return hydrate(s.Menu, rows), nil
}

// hydrate joins stored lines with the catalog. Lines whose menu item no
// longer exists are skipped, so the next mutation removes them.
func hydrate(catalog *menu.Catalog, rows []models.CartItem) []cart.Item {
	items := make([]cart.Item, 0, len(rows))
	for _, r := range rows {
		m, err := catalog.Get(r.MenuItemID)
		if err != nil {
			continue
		}
		items = append(items, cart.Item{Item: m, Quantity: int(r.Quantity)})
	}
	return items
}

func toRows(items []cart.Item) []models.CartItem {
	rows := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		rows = append(rows, models.CartItem{MenuItemID: it.ID, Quantity: uint(it.Quantity)})
	}
	return rows
}
