package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/vitality-planner/internal/api"
	"alcyxob/vitality-planner/internal/bootstrap"
	"alcyxob/vitality-planner/internal/config"
)

// @title Vitality Planner API
// @version 1.0
// @description Generates a personalised wellness plan and tracks daily adherence.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Only enforced when jwt.secret is set.
func main() {
	log.Println("Starting Vitality Planner Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (store backend %q, model %s).", cfg.Store.Backend, cfg.Gemini.Model)

	// --- Session (store, tracker, generator, planner) ---
	ctx := context.Background()
	session, err := bootstrap.NewSession(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not start session: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("ERROR: Failed to close session store: %v", err)
		}
	}()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	if cfg.JWT.Secret == "" {
		log.Println("WARN: jwt.secret is empty; /api/v1 is served without authentication")
	}
	api.SetupRoutes(router, cfg.JWT.Secret, session.Planner)

	// --- Start HTTP Server ---
	// WriteTimeout has to outlast a plan generation.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
