package authenticate_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igcadmin/entity"
	"igcadmin/internal/http-server/middleware/authenticate"
	"igcadmin/lib/api/cont"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*entity.Claims, error) {
	if token == "valid-token" {
		return &entity.Claims{Username: "admin1", Id: "a1"}, nil
	}
	return nil, fmt.Errorf("%w: invalid token", entity.ErrUnauthorized)
}

func newGate(next http.Handler) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return authenticate.New(log, stubVerifier{}, "token")(next)
}

func TestMissingTokenShortCircuits(t *testing.T) {
	reached := false
	gate := newGate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest("POST", "/admin/get-teams", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
	assert.False(t, reached, "handler must not run without a session")
}

func TestInvalidTokenShortCircuits(t *testing.T) {
	reached := false
	gate := newGate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest("POST", "/admin/get-teams", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "expired-or-forged"})

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestValidCookiePassesClaims(t *testing.T) {
	var claims *entity.Claims
	gate := newGate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = cont.GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/admin/get-teams", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "valid-token"})

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "admin1", claims.Username)
}

func TestBearerFallback(t *testing.T) {
	reached := false
	gate := newGate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/admin/get-teams", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
