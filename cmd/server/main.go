package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/productgoat/backend/config"
	httpDelivery "github.com/productgoat/backend/internal/delivery/http"
	"github.com/productgoat/backend/internal/domain"
	"github.com/productgoat/backend/internal/infrastructure/databricks"
	"github.com/productgoat/backend/internal/infrastructure/gemini"
	"github.com/productgoat/backend/internal/infrastructure/openfoodfacts"
	"github.com/productgoat/backend/internal/infrastructure/profilestore"
	"github.com/productgoat/backend/internal/infrastructure/session"
	"github.com/productgoat/backend/internal/infrastructure/vision"
	"github.com/productgoat/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("starting ProductGoat backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	// Infrastructure
	profiles, err := profilestore.NewStore(cfg.Store.Path)
	if err != nil {
		sugar.Fatalw("failed to open profile store", "path", cfg.Store.Path, "error", err)
	}
	defer profiles.Close()
	sugar.Infow("profile store ready", "path", profiles.Path())

	sessions := session.NewStore(cfg.Sessions.TTL)
	defer sessions.Close()

	primary := databricks.NewClient(cfg.Databricks.Host, cfg.Databricks.Token, cfg.Databricks.WarehouseID, sugar)
	fallback := openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, sugar)
	if cfg.Databricks.Token == "" {
		sugar.Warnw("Databricks token not configured, every lookup will use the public fallback")
	}

	var generator domain.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			sugar.Fatalw("failed to create Gemini client", "error", err)
		}
		generator = client
		sugar.Infow("Gemini configured", "model", cfg.Gemini.Model)
	} else {
		sugar.Warnw("Gemini API key not configured, insights will be unavailable")
	}

	// Usecases
	resolver := usecase.NewResolverService(primary, fallback, sugar)
	insights := usecase.NewInsightService(generator, profiles, sugar)
	onboarding := usecase.NewOnboardingService(profiles, sessions, sugar)
	capture := usecase.NewCaptureService(vision.NewDevice, vision.NewRouter, sessions, sugar)

	// HTTP delivery
	handler := httpDelivery.NewHandler(resolver, insights, onboarding, capture, profiles, sugar)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	sugar.Infow("server listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		sugar.Fatalw("server exited", "error", err)
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
