package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Middleware guards routes that require an authenticated caller.
// It reads the auth cookie, verifies the token, and stores the claims on the
// request context for handlers to read via FromContext.
type Middleware struct {
	tokens *Tokens
}

// NewMiddleware constructs a Middleware around the given token verifier.
func NewMiddleware(tokens *Tokens) *Middleware {
	return &Middleware{tokens: tokens}
}

// Require wraps next with authentication. Requests without a valid auth
// cookie receive 401 and never reach next.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.parseRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// parseRequest extracts and verifies the token from the auth cookie.
func (m *Middleware) parseRequest(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, ErrMissingToken
		}
		return nil, err
	}
	return m.tokens.Parse(cookie.Value)
}
