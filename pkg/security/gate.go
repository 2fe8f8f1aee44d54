package security

import (
	"bitwise74/filestore-api/pkg/apperr"
	"net/http"
	"slices"
	"strings"
)

const bearerPrefix = "bearer "

// Gate authenticates requests from their Authorization header. It knows
// nothing about the router, so it can be used with any handler.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

func (g *Gate) RequireAuth(r *http.Request) (Principal, error) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return Principal{}, apperr.ErrUnauthorized
	}

	p, err := g.tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		return Principal{}, apperr.ErrUnauthorized
	}

	return p, nil
}

func (g *Gate) RequireRole(r *http.Request, allowed ...string) (Principal, error) {
	p, err := g.RequireAuth(r)
	if err != nil {
		return Principal{}, err
	}

	if !slices.Contains(allowed, p.Role) {
		return Principal{}, apperr.ErrForbidden
	}

	return p, nil
}
