// Package cart implements the cart-quantity reducer. Every function takes
// the current lines and returns a new slice; inputs are never modified and
// lines keep the order in which they were first added.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/campus_bites/internal/menu"
)

// MaxQuantity bounds a single cart line.
const MaxQuantity = 99

type Item struct {
	menu.Item
	Quantity int `json:"quantity"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Add puts one unit of m into the cart.
func Add(items []Item, m menu.Item) []Item {
	return AddN(items, m, 1)
}

// AddN puts n units of m into the cart. n < 1 leaves the cart unchanged;
// the line never grows past MaxQuantity.
func AddN(items []Item, m menu.Item, n int) []Item {
	out := clone(items)
	if n < 1 {
		return out
	}
	for i := range out {
		if out[i].ID == m.ID {
			out[i].Quantity = capped(out[i].Quantity, n)
			return out
		}
	}
	return append(out, Item{Item: m, Quantity: capped(0, n)})
}

// UpdateQuantity shifts the quantity of the line with the given id by delta
// and drops the line once it reaches zero. Growth stops at MaxQuantity.
func UpdateQuantity(items []Item, id string, delta int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			if delta > 0 {
				it.Quantity = capped(it.Quantity, delta)
			} else {
				it.Quantity += delta
			}
			if it.Quantity <= 0 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func Remove(items []Item, id string) []Item {
	for _, it := range items {
		if it.ID == id {
			return UpdateQuantity(items, id, -it.Quantity)
		}
	}
	return clone(items)
}

func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func capped(q, n int) int {
	if n > MaxQuantity-q {
		return MaxQuantity
	}
	return q + n
}

func clone(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
