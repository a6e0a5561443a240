package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"career-compass/internal/app"
	"career-compass/internal/config"
	apihttp "career-compass/internal/http"
	"career-compass/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := app.NewLogger(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	shutdownOTel, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.LogMode,
		Exporter:    cfg.OTelExporter,
		SampleRatio: cfg.OTelSamplerRate,
	}, logger)
	if err != nil {
		logger.Warn("otel init failed (continuing without tracing)", zap.Error(err))
	}

	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal("app init", zap.Error(err))
	}
	defer a.Close()

	router := apihttp.NewRouter(logger,
		apihttp.RouterConfig{ServiceName: cfg.OTelServiceName, AllowedOrigins: cfg.CORSAllowedOrigins},
		apihttp.NewUserHandler(logger, a.Services.Users),
		apihttp.NewQuizHandler(logger, a.Services.Quiz),
		apihttp.NewProfileHandler(logger, a.Services.Profiles),
		apihttp.NewCareerHandler(logger, a.Services.Careers),
		apihttp.NewSkillHandler(logger, a.Services.Skills),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownOTel(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
