package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/internal/config"
	"igcadmin/internal/http-server/handlers/admin"
	"igcadmin/internal/http-server/handlers/errors"
	"igcadmin/internal/http-server/handlers/register"
	"igcadmin/internal/http-server/middleware/authenticate"
	"igcadmin/internal/http-server/middleware/timeout"
	"igcadmin/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	admin.Core
	register.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/admin", func(rootAdmin chi.Router) {
		// session-gated operations share the one authenticate middleware
		rootAdmin.Group(func(protected chi.Router) {
			protected.Use(authenticate.New(log, handler, conf.Auth.CookieName))
			protected.Post("/get-teams", admin.GetTeams(log, handler))
			protected.Post("/accept-team", admin.AcceptTeam(log, handler))
			protected.Post("/reject-team", admin.RejectTeam(log, handler))
		})
		// counts feed the public site; the endpoint stays open
		rootAdmin.Get("/getCount", admin.GetCount(log, handler))
		rootAdmin.Post("/login", admin.Login(log, handler))
		rootAdmin.Post("/logout", admin.Logout(log, handler))
	})
	router.Post("/register", register.Submit(log, handler))

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      router,
		ErrorLog:     httpLog,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIp, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
