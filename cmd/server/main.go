package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/config"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/core"
	httpDelivery "github.com/g-vidhulakripali/Barcode-Scanner-API/internal/delivery/http"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/infrastructure/gemini"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/usecase"
	logx "github.com/g-vidhulakripali/Barcode-Scanner-API/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("Failed to load configuration")
	}

	env := core.ParseEnvironment(cfg.Server.Environment)
	logx.Init(logx.LoggerOpts{Environment: env, Level: cfg.Log.Level})

	logx.Info().
		Str("environment", env.String()).
		Str("port", cfg.Server.Port).
		Str("model", cfg.Gemini.Model).
		Bool("vertexai", cfg.Gemini.UseVertexAI).
		Msg("Starting Barcode Scanner API")

	ctx := context.Background()

	// One client for the whole process, shared read-only by all requests
	client, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Gemini client")
	}
	if cfg.Gemini.UseVertexAI {
		logx.Info().Str("project", cfg.Gemini.Project).Str("location", cfg.Gemini.Location).Msg("Gemini via Vertex AI")
	} else {
		logx.Info().Str("key", cfg.Gemini.APIKey[:min(4, len(cfg.Gemini.APIKey))]+"...").Msg("Gemini via API key")
	}

	productService := usecase.NewProductService(client.Models, usecase.ProductServiceConfig{
		Model: cfg.Gemini.Model,
	})

	handler := httpDelivery.NewHandler(productService, httpDelivery.NewMetrics())
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Server forced to shut down")
	}
}
