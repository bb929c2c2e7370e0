package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/auth"
)

const testSecret = "unit-test-secret"

func TestTokens_MintAndParse(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)
	userID := uuid.New()

	signed, err := tokens.Mint(userID)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Parse(signed)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokens_Parse_Empty(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)

	_, err := tokens.Parse("")

	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestTokens_Parse_Expired(t *testing.T) {
	tokens := auth.NewTokens(testSecret, -time.Minute)

	signed, err := tokens.Mint(uuid.New())
	require.NoError(t, err)

	_, err = tokens.Parse(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_Parse_WrongSecret(t *testing.T) {
	signed, err := auth.NewTokens("other-secret", time.Hour).Mint(uuid.New())
	require.NoError(t, err)

	_, err = auth.NewTokens(testSecret, time.Hour).Parse(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_Parse_Tampered(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)

	signed, err := tokens.Mint(uuid.New())
	require.NoError(t, err)

	_, err = tokens.Parse(signed + "x")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_Parse_RejectsUnsignedAlg(t *testing.T) {
	// A token signed with alg=none must never validate, even with a valid subject.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokens(testSecret, time.Hour).Parse(raw)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_Parse_NonUUIDSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewTokens(testSecret, time.Hour).Parse(raw)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware_Require_ValidCookie(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)
	userID := uuid.New()

	signed, err := tokens.Mint(userID)
	require.NoError(t, err)

	var gotClaims *auth.Claims
	handler := auth.NewMiddleware(tokens).Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: signed})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims, "claims should be on the request context")
	assert.Equal(t, userID, gotClaims.UserID)
}

func TestMiddleware_Require_NoCookie(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)

	called := false
	handler := auth.NewMiddleware(tokens).Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without a cookie")
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestMiddleware_Require_BadToken(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)

	handler := auth.NewMiddleware(tokens).Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
