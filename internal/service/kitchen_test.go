package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/repo"
)

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "Start Cooking", ActionLabel(models.OrderStatusPending))
	assert.Equal(t, "Mark Ready", ActionLabel(models.OrderStatusCooking))
	assert.Equal(t, "Complete Order", ActionLabel(models.OrderStatusReady))
	assert.Empty(t, ActionLabel(models.OrderStatusCompleted))
}

func TestWatch_ReloadsOnEvent(t *testing.T) {
	hub := events.NewHub(events.DefaultBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loads := 0
	list := func(context.Context) ([]models.Order, error) {
		loads++
		return make([]models.Order, loads), nil
	}

	seen := make(chan int, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, list, hub, time.Hour, func(orders []models.Order) error {
			seen <- len(orders)
			return nil
		})
	}()

	require.Equal(t, 1, <-seen)
	require.NoError(t, hub.Publish(ctx, events.Event{Type: events.OrderCreated}))

	select {
	case n := <-seen:
		require.Equal(t, 2, n)
	case <-time.After(time.Second):
		t.Fatal("watch did not reload after an event")
	}

	cancel()
	require.NoError(t, <-done)
	require.Zero(t, hub.Subscribers())
}

func TestWatch_PollsAndStopsOnCallbackError(t *testing.T) {
	stop := errors.New("client gone")
	calls := 0
	failures := 0

	list := func(context.Context) ([]models.Order, error) {
		failures++
		if failures == 2 {
			return nil, errors.New("db hiccup")
		}
		return nil, nil
	}

	err := Watch(context.Background(), list, nil, 5*time.Millisecond, func([]models.Order) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, calls)
	require.Equal(t, 4, failures)
}

func TestKitchenService(t *testing.T) {
	f := newFixture(t)
	k := &KitchenService{Orders: f.orders, Hub: f.hub, PollInterval: time.Hour}
	ctx := context.Background()

	o := f.place(t, "7")

	active, err := k.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	got, err := k.Advance(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCooking, got.Status)

	got, err = k.SetStatus(ctx, o.ID, models.OrderStatusReady)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusReady, got.Status)

	streamCtx, cancel := context.WithCancel(ctx)
	var streamed []models.Order
	err = k.Stream(streamCtx, func(orders []models.Order) error {
		streamed = orders
		cancel()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, streamed, 1)
	require.Equal(t, models.OrderStatusReady, streamed[0].Status)
}

func TestKitchenService_ListAndCounts(t *testing.T) {
	f := newFixture(t)
	k := &KitchenService{Orders: f.orders, Hub: f.hub}
	ctx := context.Background()

	a := f.place(t, "1")
	f.place(t, "2")
	c := f.place(t, "3")
	_, err := k.Advance(ctx, a.ID)
	require.NoError(t, err)

	orders, total, err := k.List(ctx, repo.OrderFilter{ExcludeCompleted: true, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, orders, 2)
	require.Equal(t, c.ID, orders[0].ID)

	orders, total, err = k.List(ctx, repo.OrderFilter{Statuses: []models.OrderStatus{models.OrderStatusCooking}})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, a.ID, orders[0].ID)

	counts, err := k.Counts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[models.OrderStatusPending])
	require.EqualValues(t, 1, counts[models.OrderStatusCooking])
	require.EqualValues(t, 0, counts[models.OrderStatusCompleted])
}
