// Package menu holds the fixed food catalog served by the storefront.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("menu item not found")
	ErrUnknownCategory = errors.New("unknown category")
)

type Category string

const (
	SouthIndian Category = "South Indian"
	NorthIndian Category = "North Indian"
	Snacks      Category = "Snacks"
	Beverages   Category = "Beverages"
)

// AllCategories is the pseudo-category that selects the whole menu.
const AllCategories = "All"

var categories = []Category{SouthIndian, NorthIndian, Snacks, Beverages}

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	ImageURL    string          `json:"image_url"`
	IsSpicy     bool            `json:"is_spicy"`
	IsVeg       bool            `json:"is_veg"`
}

type Catalog struct {
	items []Item
	byID  map[string]int
}

func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("menu item %d: empty id", i)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("menu item %q: duplicate id", it.ID)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %q: negative price", it.ID)
		}
		if !validCategory(it.Category) {
			return nil, fmt.Errorf("menu item %q: %w %q", it.ID, ErrUnknownCategory, it.Category)
		}
		c.items[i] = it
		c.byID[it.ID] = i
	}
	return c, nil
}

func (c *Catalog) All() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) ByCategory(category string) ([]Item, error) {
	if category == "" || strings.EqualFold(category, AllCategories) {
		return c.All(), nil
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Catalog) Get(id string) (Item, error) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return c.items[i], nil
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCategory, s)
}

func validCategory(c Category) bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
