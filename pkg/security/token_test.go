package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Principal{ID: 7, Email: "alice@example.com", Role: "editor"}

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)

	token, err := s.Issue(alice)
	require.NoError(t, err)

	p, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, alice, p)
}

func TestTokenExpiry(t *testing.T) {
	s := NewTokenService("test-secret", 7*24*time.Hour)

	token, err := s.Issue(alice)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestTokenRejected(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)

	valid, err := s.Issue(alice)
	require.NoError(t, err)

	expired, err := NewTokenService("test-secret", -time.Minute).Issue(alice)
	require.NoError(t, err)

	otherSecret, err := NewTokenService("other-secret", time.Hour).Issue(alice)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ID:    alice.ID,
		Email: alice.Email,
		Role:  alice.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    alice.ID,
		Email: alice.Email,
		Role:  alice.Role,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	missingID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: alice.Email,
		Role:  alice.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"alg none", none},
		{"no expiry", noExpiry},
		{"missing id", missingID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
