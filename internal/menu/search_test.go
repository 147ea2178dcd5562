package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySearcher(t *testing.T) {
	s := &MemorySearcher{Catalog: Default()}
	ctx := context.Background()

	total, items, err := s.Search(ctx, "dosa", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "1", items[0].ID)

	total, items, err = s.Search(ctx, "  POTATO ", 0, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, total, int64(2))
	require.Len(t, items, int(total))

	total, items, err = s.Search(ctx, "potato spiced pastry", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Samosa", items[0].Name)

	// Categories are filtered separately, not searched.
	total, items, err = s.Search(ctx, "beverages", 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)

	total, items, err = s.Search(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)
}

func TestMemorySearcher_Paging(t *testing.T) {
	s := &MemorySearcher{Catalog: Default()}
	ctx := context.Background()

	total, first, err := s.Search(ctx, "rice", 0, 2)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Len(t, first, 2)

	_, second, err := s.Search(ctx, "rice", 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotEqual(t, first[0].ID, second[0].ID)
	require.NotEqual(t, first[1].ID, second[1].ID)

	_, beyond, err := s.Search(ctx, "rice", 10, 2)
	require.NoError(t, err)
	require.Empty(t, beyond)
}
