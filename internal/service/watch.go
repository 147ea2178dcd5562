package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

const DefaultPollInterval = 2 * time.Second

// Watch loads the order list once, then again on every hub event and on
// every poll tick, passing each result to fn. A failed load is logged and
// retried on the next trigger. Watch returns nil when ctx ends and fn's
// error when fn fails. hub may be nil, in which case only polling runs.
func Watch(ctx context.Context, list func(context.Context) ([]models.Order, error), hub *events.Hub, interval time.Duration, fn func([]models.Order) error) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var updates <-chan events.Event
	if hub != nil {
		ch, unsubscribe := hub.Subscribe()
		defer unsubscribe()
		updates = ch
	}

	l := logging.FromContext(ctx)
	load := func() error {
		orders, err := list(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.Warn("watch_load_error", "error", err)
			return nil
		}
		return fn(orders)
	}

	if err := load(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			if err := load(); err != nil {
				return err
			}
		case <-ticker.C:
			if err := load(); err != nil {
				return err
			}
		}
	}
}
