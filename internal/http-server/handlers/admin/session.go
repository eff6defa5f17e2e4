package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/entity"
	"igcadmin/lib/api/response"
	"igcadmin/lib/sl"
)

// Login verifies admin credentials and, on success, sets the session
// cookie and returns the token in the body. A failed password comparison
// clears any session cookie the client still holds.
func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.admin"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var creds entity.Credentials
		if err := render.Bind(r, &creds); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Username and password are required"))
			return
		}
		logger = logger.With(slog.String("username", creds.Username))

		token, err := handler.Login(r.Context(), creds.Username, creds.Password)
		if err != nil {
			logger.Error("login", sl.Err(err))
			switch {
			case errors.Is(err, entity.ErrValidation):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Username and password are required"))
			case errors.Is(err, entity.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("User not found"))
			case errors.Is(err, entity.ErrInvalidCredential):
				http.SetCookie(w, handler.ClearCookie())
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid Username or Password"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Login failed"))
			}
			return
		}

		http.SetCookie(w, handler.SessionCookie(token))
		render.JSON(w, r, response.LoginResult{Success: true, Token: token})
	}
}

// Logout unconditionally clears the session cookie. No token validation;
// logging out an expired session is fine.
func Logout(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, handler.ClearCookie())
		render.JSON(w, r, response.Ok("Logout successful"))
	}
}
