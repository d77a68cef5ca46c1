package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nlivrilik/cmd"
	"nlivrilik/internal/adapters/out/postgres/orderrepo"
	"nlivrilik/internal/adapters/out/postgres/ratingrepo"
	"nlivrilik/internal/adapters/out/postgres/userrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Application terminated", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Missing .env is fine, the environment may be set by the runtime.
	_ = godotenv.Load(".env")

	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}, &ratingrepo.RatingDTO{}); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	root := cmd.NewCompositionRoot(config, db, logger)

	root.Dispatcher().Start()
	defer root.Dispatcher().Stop()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if startErr := e.Start(":" + config.HTTPPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", startErr)
		}
	}()
	logger.Info("Application started", "port", config.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
