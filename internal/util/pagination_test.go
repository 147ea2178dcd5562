package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(0, 0)
	require.Equal(t, 0, offset)
	require.Equal(t, DefaultPageSize, limit)

	offset, limit = Calculate(3, 5)
	require.Equal(t, 10, offset)
	require.Equal(t, 5, limit)

	_, limit = Calculate(1, MaxPageSize+1)
	require.Equal(t, DefaultPageSize, limit)
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 7, ParseIntDefault("", 7))
	require.Equal(t, 7, ParseIntDefault("x", 7))
	require.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestMeta(t *testing.T) {
	m := Meta(2, 10, 10, 25)
	require.Equal(t, int64(3), m["total_pages"])
	require.Equal(t, true, m["has_prev"])
	require.Equal(t, true, m["has_next"])

	m = Meta(3, 20, 10, 25)
	require.Equal(t, false, m["has_next"])
}
