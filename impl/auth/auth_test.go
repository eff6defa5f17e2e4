package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"igcadmin/entity"
	"igcadmin/impl/auth"
)

type stubStore struct {
	admin *entity.Administrator
}

func (s *stubStore) GetAdmin(_ context.Context, username string) (*entity.Administrator, error) {
	if s.admin != nil && s.admin.Username == username {
		return s.admin, nil
	}
	return nil, entity.ErrNotFound
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGate(t *testing.T, ttl time.Duration) *auth.Auth {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &stubStore{admin: &entity.Administrator{
		Id:           "a1b2c3",
		Username:     "admin1",
		PasswordHash: string(hash),
	}}
	return auth.New(auth.Config{
		Secret:       "test-signing-secret",
		CookieName:   "token",
		TokenTTL:     ttl,
		SecureCookie: true,
	}, store, discard())
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	gate := newGate(t, time.Hour)

	token, err := gate.Login(context.Background(), "admin1", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin1", claims.Username)
	assert.Equal(t, "a1b2c3", claims.Id)
	assert.NotEmpty(t, claims.ID, "token should carry a jti")
}

func TestLoginFailures(t *testing.T) {
	gate := newGate(t, time.Hour)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "unknown user", username: "nobody", password: "s3cret", wantErr: entity.ErrNotFound},
		{name: "wrong password", username: "admin1", password: "wrong", wantErr: entity.ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	gate := newGate(t, -time.Minute)

	token, err := gate.Login(context.Background(), "admin1", "s3cret")
	require.NoError(t, err)

	_, err = gate.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	gate := newGate(t, time.Hour)
	token, err := gate.Login(context.Background(), "admin1", "s3cret")
	require.NoError(t, err)

	otherGate := auth.New(auth.Config{
		Secret:     "a-different-secret",
		CookieName: "token",
		TokenTTL:   time.Hour,
	}, &stubStore{}, discard())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "tampered", token: token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Verify(tt.token)
			assert.ErrorIs(t, err, entity.ErrUnauthorized)
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		_, err := otherGate.Verify(token)
		assert.ErrorIs(t, err, entity.ErrUnauthorized)
	})
}

func TestSessionCookieAttributes(t *testing.T) {
	gate := newGate(t, time.Hour)

	cookie := gate.SessionCookie("sometoken")
	assert.Equal(t, "token", cookie.Name)
	assert.Equal(t, "sometoken", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestClearCookieExpiresSession(t *testing.T) {
	gate := newGate(t, time.Hour)

	cookie := gate.ClearCookie()
	assert.Equal(t, "token", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.True(t, cookie.HttpOnly)
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))

	_, err = auth.HashPassword("")
	assert.ErrorIs(t, err, entity.ErrValidation)
}
