package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword(t *testing.T) {
	h, err := HashPasswordCost("1234", bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, CheckPassword(h, "1234"))
	require.False(t, CheckPassword(h, "4321"))
	require.False(t, CheckPassword("", "1234"))
}
