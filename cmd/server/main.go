package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"igcadmin/entity"
	"igcadmin/impl/auth"
	"igcadmin/impl/core"
	"igcadmin/impl/lifecycle"
	"igcadmin/internal/config"
	"igcadmin/internal/database"
	"igcadmin/internal/http-server/api"
	"igcadmin/internal/mailer"
	"igcadmin/internal/tgalert"
	"igcadmin/lib/logger"
	"igcadmin/lib/sl"
)

const logFileName = "igcadmin.log"

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	adminUser := flag.String("admin-user", "", "seed an administrator account and exit (requires -admin-pass)")
	adminPass := flag.String("admin-pass", "", "password for the seeded administrator")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	log := logger.SetupLogger(conf.Env, filepath.Join(*logPath, logFileName))
	log.Info("starting igcadmin", slog.String("config", *configPath), slog.String("env", conf.Env))

	db := database.NewMongoClient(conf)

	if *adminUser != "" {
		seedAdmin(db, *adminUser, *adminPass, log)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Warn("ensure indexes", sl.Err(err))
	}
	cancel()

	var alert *tgalert.Alert
	if conf.Telegram.ApiKey != "" && conf.Telegram.ChatId != 0 {
		var err error
		alert, err = tgalert.New(conf.Telegram.ApiKey, conf.Telegram.ChatId, log)
		if err != nil {
			log.Error("telegram alerts disabled", sl.Err(err))
			alert = nil
		} else {
			log = slog.New(logger.NewTelegramHandler(log.Handler(), alert, slog.LevelError))
		}
	}

	var notifier lifecycle.Notifier
	if m := mailer.New(conf.Mailjet, log); m != nil {
		notifier = m
	} else {
		log.Warn("mailjet keys not configured, email notifications disabled")
	}

	var alerter lifecycle.Alerter
	if alert != nil {
		alerter = alert
	}

	authService := auth.New(auth.Config{
		Secret:       conf.Auth.Secret,
		CookieName:   conf.Auth.CookieName,
		TokenTTL:     conf.Auth.TokenTTL(),
		SecureCookie: conf.Auth.SecureCookie,
	}, db, log)

	manager := lifecycle.New(db, notifier, alerter, log)
	handler := core.New(authService, manager, db, log)

	if err := api.New(conf, log, handler); err != nil {
		log.Error("api server stopped", sl.Err(err))
		os.Exit(1)
	}
}

// seedAdmin provisions an administrator account out of band. Passwords are
// stored as bcrypt hashes only.
func seedAdmin(db *database.MongoDB, username, password string, log *slog.Logger) {
	if password == "" {
		log.Error("seed admin: -admin-pass is required")
		os.Exit(1)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("seed admin: hash password", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = db.UpsertAdmin(ctx, &entity.Administrator{
		Id:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		log.Error("seed admin", sl.Err(err))
		os.Exit(1)
	}
	log.Info("administrator account seeded", slog.String("username", username))
}
