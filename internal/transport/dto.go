package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/campus_bites/internal/cart"
	"github.com/Skotchmaster/campus_bites/internal/models"
)

type AddToCartRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CartLine struct {
	cart.Item
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func NewCartResponse(items []cart.Item) CartResponse {
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, CartLine{Item: it, LineTotal: it.LineTotal()})
	}
	return CartResponse{Items: lines, Total: cart.Total(items), Count: cart.Count(items)}
}

// KitchenOrder is an order as shown on the kitchen board, with the label
// of the button that advances it.
type KitchenOrder struct {
	models.Order
	Action string `json:"action"`
}

// BoardResponse is the kitchen board: one page of orders plus the status
// tally over all orders.
type BoardResponse struct {
	Data   []KitchenOrder               `json:"data"`
	Counts map[models.OrderStatus]int64 `json:"counts"`
	Meta   map[string]any               `json:"meta,omitempty"`
}
