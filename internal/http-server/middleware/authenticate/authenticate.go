// Package authenticate is the single session gate for the protected admin
// routes. The token comes from the session cookie, with an Authorization
// Bearer fallback for header-based clients (login returns the token in the
// body as well as the cookie). Verification failures short-circuit before
// any handler or store access.
package authenticate

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/entity"
	"igcadmin/lib/api/cont"
	"igcadmin/lib/api/response"
	"igcadmin/lib/sl"
)

type Authenticate interface {
	VerifyToken(token string) (*entity.Claims, error)
}

func New(log *slog.Logger, auth Authenticate, cookieName string) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			token := sessionToken(r, cookieName)
			if token == "" {
				authFailed(ww, r)
				return
			}
			logger = logger.With(sl.Secret("token", token))

			if auth == nil {
				authFailed(ww, r)
				return
			}

			claims, err := auth.VerifyToken(token)
			if err != nil {
				logger = logger.With(sl.Err(err))
				authFailed(ww, r)
				return
			}
			logger = logger.With(
				slog.String("user", claims.Username),
			)
			ctx := cont.PutClaims(r.Context(), claims)

			ww.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// sessionToken extracts the token from the session cookie, falling back to
// the Authorization header.
func sessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func authFailed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error("Unauthorized"))
}
