package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/campus_bites/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, sessionID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateCart loads the session's lines under lock, passes them to fn and
// stores whatever fn returns: lines missing from the result are deleted,
// new menu items are inserted and changed quantities are updated. Lines
// with zero quantity count as missing.
func (r *GormRepo) UpdateCart(ctx context.Context, sessionID uuid.UUID, fn func([]models.CartItem) ([]models.CartItem, error)) ([]models.CartItem, error) {
	var result []models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			Order("position ASC").
			Find(&current).Error; err != nil {
			return err
		}

		old := make(map[string]models.CartItem, len(current))
		for _, it := range current {
			old[it.MenuItemID] = it
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		result = make([]models.CartItem, 0, len(next))
		for _, n := range next {
			if n.Quantity == 0 {
				continue
			}
			pos := len(result)

			if o, ok := old[n.MenuItemID]; ok {
				delete(old, n.MenuItemID)
				if o.Quantity != n.Quantity || o.Position != pos {
					if err := tx.Model(&models.CartItem{}).
						Where("id = ?", o.ID).
						Updates(map[string]any{"quantity": n.Quantity, "position": pos}).Error; err != nil {
						return err
					}
				}
				o.Quantity = n.Quantity
				o.Position = pos
				result = append(result, o)
				continue
			}

			row := models.CartItem{
				SessionID:  sessionID,
				MenuItemID: n.MenuItemID,
				Quantity:   n.Quantity,
				Position:   pos,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result = append(result, row)
		}

		for _, o := range old {
			if err := tx.Delete(&models.CartItem{}, "id = ?", o.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, sessionID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
}
