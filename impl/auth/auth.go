// Package auth implements the admin session gate: password verification on
// login, session token mint/verify, and the cookie pair handlers attach to
// responses. Configuration is passed in explicitly; there is no package
// level secret.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"igcadmin/entity"
	"igcadmin/lib/sl"
)

type Config struct {
	Secret       string
	CookieName   string
	TokenTTL     time.Duration
	SecureCookie bool
}

type Store interface {
	GetAdmin(ctx context.Context, username string) (*entity.Administrator, error)
}

type Auth struct {
	conf  Config
	store Store
	log   *slog.Logger
}

func New(conf Config, store Store, log *slog.Logger) *Auth {
	return &Auth{
		conf:  conf,
		store: store,
		log:   log.With(sl.Module("auth")),
	}
}

// Login verifies the credentials against the stored bcrypt hash and mints a
// session token. entity.ErrNotFound when the account does not exist,
// entity.ErrInvalidCredential on password mismatch.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := a.store.GetAdmin(ctx, username)
	if err != nil {
		return "", err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: password mismatch for %s", entity.ErrInvalidCredential, username)
	}

	now := time.Now()
	claims := entity.Claims{
		Username: admin.Username,
		Id:       admin.Id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.conf.TokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.conf.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	a.log.Info("admin logged in", slog.String("username", username))
	return token, nil
}

// Verify decodes and validates a session token. Every failure mode (bad
// signature, malformed token, expiry) collapses into entity.ErrUnauthorized;
// nothing else escapes this boundary.
func (a *Auth) Verify(token string) (*entity.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &entity.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(a.conf.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", entity.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", entity.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*entity.Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", entity.ErrUnauthorized)
	}
	return claims, nil
}

// SessionCookie wraps a freshly minted token in the session cookie:
// httpOnly, SameSite=None, site-wide, expiring with the token.
func (a *Auth) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     a.conf.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.conf.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.conf.SecureCookie,
		SameSite: http.SameSiteNoneMode,
	}
}

// ClearCookie returns an expired session cookie. Set on logout and on
// failed login so no stale session survives in the browser.
func (a *Auth) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     a.conf.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   a.conf.SecureCookie,
		SameSite: http.SameSiteNoneMode,
	}
}

// HashPassword generates a bcrypt hash for admin provisioning.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", entity.ErrValidation)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}
