package models

import "fmt"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCooking   OrderStatus = "cooking"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
)

var statusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusCooking,
	OrderStatusReady,
	OrderStatusCompleted,
}

// Statuses lists every status in flow order.
func Statuses() []OrderStatus {
	out := make([]OrderStatus, len(statusFlow))
	copy(out, statusFlow)
	return out
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// Next returns the status that follows s. ok is false for completed and
// for unknown values.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	r := s.rank()
	if r < 0 || r == len(statusFlow)-1 {
		return "", false
	}
	return statusFlow[r+1], true
}

func (s OrderStatus) Final() bool {
	return s == OrderStatusCompleted
}

// CanTransitionTo reports whether target is the immediate successor of s.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

func (s OrderStatus) rank() int {
	for i, st := range statusFlow {
		if st == s {
			return i
		}
	}
	return -1
}
