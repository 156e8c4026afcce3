package password_test

import (
	"strings"
	"testing"

	"github.com/haifazahra-ui/pi-sosmed/internal/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)

	t.Run("HashIsNotPlaintext", func(t *testing.T) {
		hashed, err := h.Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hashed)

		cost, err := bcrypt.Cost([]byte(hashed))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("HashIsSalted", func(t *testing.T) {
		a, err := h.Hash("same")
		require.NoError(t, err)
		b, err := h.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Compare", func(t *testing.T) {
		hashed, err := h.Hash("correct horse")
		require.NoError(t, err)

		for _, tc := range []struct {
			candidate string
			want      bool
		}{
			{"correct horse", true},
			{"correct horse ", false},
			{"Correct horse", false},
			{"", false},
		} {
			ok, err := h.Compare(tc.candidate, hashed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok, "candidate %q", tc.candidate)
		}
	})

	t.Run("CompareMalformedHash", func(t *testing.T) {
		ok, err := h.Compare("anything", "not-a-bcrypt-hash")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestBcryptHasherLongPassword(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hashed, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Compare(long, hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(long[:password.MaxLength], hashed)
	require.NoError(t, err)
	assert.True(t, ok, "bytes past the limit are ignored")

	ok, err = h.Compare(long[:password.MaxLength-1], hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBcryptDefaultCost(t *testing.T) {
	h := password.NewBcrypt(0)

	hashed, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}
