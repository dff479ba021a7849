package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"inkpost/internal/app"
	"inkpost/internal/config"
	"inkpost/internal/logger"
	"inkpost/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("server").Fatal().Err(err).Msg("loading configuration")
	}
	log := logger.NewLoggerWithLevel("server", cfg.App.LogLevel)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing application")
	}
	defer a.Close()

	templates, err := router.LoadTemplates(cfg.App.TemplatesDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.App.TemplatesDir).Msg("loading templates")
	}

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router.New(a, templates),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("blog server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("graceful shutdown failed")
	}
}
