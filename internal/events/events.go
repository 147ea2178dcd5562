// Package events broadcasts order changes to in-process watchers and to
// external sinks.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/campus_bites/internal/models"
)

const (
	OrderCreated       = "order_created"
	OrderStatusChanged = "order_status_changed"
)

type Event struct {
	Type          string             `json:"type"`
	OrderID       uuid.UUID          `json:"order_id"`
	TokenNumber   string             `json:"token_number"`
	Status        models.OrderStatus `json:"status"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	ItemCount     int                `json:"item_count,omitempty"`
	At            time.Time          `json:"at"`
}

func FromOrder(typ string, o *models.Order, at time.Time) Event {
	n := 0
	for _, it := range o.Items {
		n += int(it.Quantity)
	}
	return Event{
		Type:          typ,
		OrderID:       o.ID,
		TokenNumber:   o.TokenNumber,
		Status:        o.Status,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		ItemCount:     n,
		At:            at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every sink and reports all failures together.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
