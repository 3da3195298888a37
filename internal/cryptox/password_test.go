package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// low-cost params keep the tests fast
func testParams() Params {
	return Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("123456", testParams())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("123456", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashNotDeterministic(t *testing.T) {
	h1, err := HashPassword("123456", testParams())
	require.NoError(t, err)
	h2, err := HashPassword("123456", testParams())
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"too few parts", "$argon2id$v=19$m=8192,t=1,p=1$salt"},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=1$salt$hash"},
		{"bad version", "$argon2id$v=abc$m=8192,t=1,p=1$salt$hash"},
		{"bad params", "$argon2id$v=19$m=abc,t=1,p=1$salt$hash"},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("pw", tt.hash)
			assert.Error(t, err)
		})
	}
}
