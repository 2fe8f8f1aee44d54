package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastHasher() *PasswordHasher {
	h := NewPasswordHasher()
	h.Memory = 1024
	h.Iterations = 1
	return h
}

func TestPasswordHasher(t *testing.T) {
	h := fastHasher()

	encoded, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=2$"))

	ok, err := h.Verify("hunter22", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("hunter23", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasherSaltsEveryHash(t *testing.T) {
	h := fastHasher()

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasherReadsParamsFromHash(t *testing.T) {
	encoded, err := fastHasher().Hash("secret1")
	require.NoError(t, err)

	ok, err := NewPasswordHasher().Verify("secret1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasherRejectsMalformed(t *testing.T) {
	testCases := []string{
		"",
		"plaintext",
		"$2a$12$abcdefghijklmnopqrstuv",
		"$argon2id$v=19$m=1024,t=1,p=2$!!!$abc",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
	}

	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			ok, err := fastHasher().Verify("secret1", tc)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}
