// Package auth mints and verifies the JWTs carried by the "auth" cookie,
// and provides the middleware that guards protected routes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the HttpOnly cookie holding the session token.
const CookieName = "auth"

// ErrMissingToken is returned when the auth cookie is absent.
var ErrMissingToken = errors.New("missing auth token")

// ErrInvalidToken wraps parsing/validation errors for expired, tampered,
// or otherwise unusable tokens.
var ErrInvalidToken = errors.New("invalid auth token")

// Claims represents the payload extracted from a verified token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens constructs a Tokens with the given signing secret and lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Mint issues a signed token for the given user id.
func (t *Tokens) Mint(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Tokens.Mint: %w", err)
	}
	return signed, nil
}

// TTL returns the configured token lifetime, used to set the cookie Max-Age.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Parse validates a token string and returns normalized claims.
func (t *Tokens) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, ExpiresAt: exp.Time}, nil
}
