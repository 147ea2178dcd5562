package menu

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	all := c.All()
	require.NotEmpty(t, all)

	seen := map[Category]bool{}
	for _, it := range all {
		seen[it.Category] = true
		assert.True(t, it.Price.IsPositive(), it.ID)
	}
	for _, cat := range c.Categories() {
		assert.True(t, seen[cat], "category %q has no items", cat)
	}
}

func TestByCategory(t *testing.T) {
	c := Default()

	all, err := c.ByCategory(AllCategories)
	require.NoError(t, err)
	require.Len(t, all, len(c.All()))

	empty, err := c.ByCategory("")
	require.NoError(t, err)
	require.Len(t, empty, len(c.All()))

	drinks, err := c.ByCategory("beverages")
	require.NoError(t, err)
	require.NotEmpty(t, drinks)
	for _, it := range drinks {
		require.Equal(t, Beverages, it.Category)
	}

	_, err = c.ByCategory("Desserts")
	require.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestGet(t *testing.T) {
	c := Default()

	it, err := c.Get("1")
	require.NoError(t, err)
	require.Equal(t, "Masala Dosa", it.Name)

	_, err = c.Get("999")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "changed"

	it, err := c.Get(all[0].ID)
	require.NoError(t, err)
	require.NotEqual(t, "changed", it.Name)
}

func TestNew_Validation(t *testing.T) {
	ok := Item{ID: "a", Name: "A", Category: Snacks, Price: decimal.NewFromInt(1)}

	_, err := New([]Item{ok, ok})
	require.Error(t, err)

	_, err = New([]Item{{Name: "no id", Category: Snacks}})
	require.Error(t, err)

	_, err = New([]Item{{ID: "b", Category: Snacks, Price: decimal.NewFromInt(-1)}})
	require.Error(t, err)

	_, err = New([]Item{{ID: "c", Category: "Pizza"}})
	require.True(t, errors.Is(err, ErrUnknownCategory))
}
