package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/campus_bites/internal/models"
)

type OrderFilter struct {
	Statuses         []models.OrderStatus
	ExcludeCompleted bool
	Limit            int
	Offset           int
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	})
}

// CheckoutCart turns the session's cart into an order in one transaction:
// build receives the locked cart lines and returns the order to store, and
// the cart is emptied once the order is written.
func (r *GormRepo) CheckoutCart(ctx context.Context, sessionID uuid.UUID, build func([]models.CartItem) (*models.Order, error)) (*models.Order, error) {
	var order *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			Order("position ASC").
			Find(&lines).Error; err != nil {
			return err
		}

		o, err := build(lines)
		if err != nil {
			return err
		}

		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := preloadItems(r.DB.WithContext(ctx)).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (f OrderFilter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.ExcludeCompleted {
		q = q.Where("status <> ?", models.OrderStatusCompleted)
	}
	return q
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := f.apply(preloadItems(r.DB.WithContext(ctx)).Model(&models.Order{}))
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	orders := []models.Order{}
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountOrders counts the orders matching f, ignoring its paging.
func (r *GormRepo) CountOrders(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	err := f.apply(r.DB.WithContext(ctx).Model(&models.Order{})).Count(&n).Error
	return n, err
}

// StatusCounts returns the number of orders per status. Every known
// status is present, zero when no order has it.
func (r *GormRepo) StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[models.OrderStatus]int64, len(models.Statuses()))
	for _, st := range models.Statuses() {
		out[st] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *GormRepo) ActiveTokens(ctx context.Context) (map[string]struct{}, error) {
	var tokens []string
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCompleted).
		Pluck("token_number", &tokens).Error; err != nil {
		return nil, err
	}

	out := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		out[t] = struct{}{}
	}
	return out, nil
}

// UpdateOrderStatus locks the order, asks decide for the new status given
// the current one and stores it. decide's error aborts the update.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, decide func(models.OrderStatus) (models.OrderStatus, error)) (*models.Order, error) {
	var o models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error; err != nil {
			return err
		}

		target, err := decide(o.Status)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", target).Error; err != nil {
			return err
		}

		return preloadItems(tx).First(&o, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}
