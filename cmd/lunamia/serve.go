package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/lunamia/internal/api"
	"github.com/terraincognita07/lunamia/internal/db"
	"github.com/terraincognita07/lunamia/internal/i18n"
)

type serveConfig struct {
	dbPath          string
	port            string
	secretKey       string
	defaultLanguage string
	cookieSecure    bool
	notifySchedule  string
}

func loadServeConfig() (serveConfig, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return serveConfig{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return serveConfig{}, err
	}
	cookieSecure, err := resolveCookieSecure()
	if err != nil {
		return serveConfig{}, err
	}
	schedule, err := resolveNotifySchedule()
	if err != nil {
		return serveConfig{}, err
	}
	return serveConfig{
		dbPath:          resolveDBPath(dbPathFlag),
		port:            port,
		secretKey:       secretKey,
		defaultLanguage: getEnv("DEFAULT_LANGUAGE", i18n.LangEN),
		cookieSecure:    cookieSecure,
		notifySchedule:  schedule,
	}, nil
}

func newFiberApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Lunamia",
		DisableStartupMessage: true,
		BodyLimit:             8 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, err := loadServeConfig()
	if err != nil {
		return err
	}
	location := resolveLocation()
	time.Local = location

	notifiers, err := configuredNotifiers()
	if err != nil {
		return err
	}

	i18nManager, err := i18n.NewManager(config.defaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}
	database, err := db.OpenSQLite(config.dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("database close failed: %v", err)
		}
	}()

	handler, err := api.NewHandler(database, config.secretKey, location, i18nManager, config.cookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newFiberApp(handler)

	sigCtx, stopSignals := withSignals(cmd.Context())
	defer stopSignals()

	if err := handler.UseNotifiers(notifiers...).Start(sigCtx, config.notifySchedule); err != nil {
		return err
	}

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Lunamia listening on http://0.0.0.0:%s (db: %s, tz: %s)", config.port, config.dbPath, location.String())
	if err := app.Listen(":" + config.port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
