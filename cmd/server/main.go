// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tapline/internal/auth"
	"tapline/internal/catalog"
	"tapline/internal/config"
	"tapline/internal/ordering"
	"tapline/internal/store"
	"tapline/internal/stream"
	"tapline/internal/telemetry"
	"tapline/internal/webhook"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Error("setup telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(flushCtx)
		}()
	}

	st := store.New()
	hub := stream.NewHub(st.MenuVersion, logger)

	var agent *webhook.Agent
	var notifier ordering.Notifier
	if cfg.Webhook.Endpoint != "" {
		agent = webhook.NewAgent(webhook.Config{
			Endpoint:    cfg.Webhook.Endpoint,
			Secret:      cfg.Webhook.Secret,
			MaxAttempts: cfg.Webhook.MaxAttempts,
			BaseDelay:   cfg.Webhook.BaseDelay.Std(),
			RateLimit:   cfg.Webhook.RateLimit,
			RateBurst:   cfg.Webhook.RateBurst,
			HTTPTimeout: cfg.Webhook.HTTPTimeout.Std(),
		}, logger)
		notifier = agent
	}

	catalogSvc := catalog.NewService(st, hub, logger)
	orderingSvc := ordering.NewService(st, hub, notifier, cfg.VenueID, logger)

	guard := auth.NewGuard(cfg.AuthSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"menuVersion": st.MenuVersion(),
			"subscribers": hub.Count(),
		})
	})
	r.Method(http.MethodGet, "/events", stream.NewHandler(hub, logger))

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware)
		catalog.NewHandler(catalogSvc).Routes(r)
		ordering.NewHandler(orderingSvc).Routes(r)
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "venue_id", cfg.VenueID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}

	// Let in-flight webhook deliveries run their retry budget out.
	if agent != nil {
		agent.Wait()
	}
}
