package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/NPrawn/food-classifier/internal/catalog"
	"github.com/NPrawn/food-classifier/internal/config"
	"github.com/NPrawn/food-classifier/internal/handlers"
	"github.com/NPrawn/food-classifier/internal/middleware"
	"github.com/NPrawn/food-classifier/internal/model"
	"github.com/NPrawn/food-classifier/internal/pipeline"
	"github.com/NPrawn/food-classifier/internal/refdata"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	cat, err := catalog.Load(
		filepath.Join(cfg.DataDir, "class_names_en.json"),
		filepath.Join(cfg.DataDir, "class_names_ko.json"),
	)
	if err != nil {
		slog.Error("failed to load label catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("label catalog loaded", "classes", cat.Len())

	nutrition, err := refdata.LoadNutrition(filepath.Join(cfg.DataDir, "nutrition.json"))
	if err != nil {
		slog.Error("failed to load nutrition table", "error", err)
		os.Exit(1)
	}

	allergens, err := refdata.LoadAllergens(filepath.Join(cfg.DataDir, "allergens.json"))
	if err != nil {
		slog.Error("failed to load allergen table", "error", err)
		os.Exit(1)
	}

	slog.Info("loading model", "model", cfg.ModelPath, "metadata", cfg.MetadataPath)
	classifier, err := model.New(cfg.ModelPath, cfg.MetadataPath, cat)
	if err != nil {
		slog.Error("failed to initialize classifier", "error", err)
		os.Exit(1)
	}
	defer classifier.Close()

	pipe := pipeline.New(classifier, nutrition, allergens, classifier.ImageSize())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		gin.Recovery(),
		corsMiddleware(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateRPS, cfg.RateBurst),
	)
	handlers.RegisterRoutes(r, handlers.New(pipe))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}

func corsMiddleware(origins string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if origins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		for _, o := range strings.Split(origins, ",") {
			corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, strings.TrimSpace(o))
		}
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type"}
	return cors.New(corsCfg)
}
