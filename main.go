package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/database"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/middleware"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/routes"
	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/services"
)

func main() {
	// Load .env without overwriting real environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	required := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET"}
	for _, key := range required {
		if os.Getenv(key) == "" {
			log.Fatalf("Missing required environment variable: %s", key)
		}
	}

	if _, err := database.Connect(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if os.Getenv("ENV") == "development" {
		err := database.DB.AutoMigrate(
			&models.Admin{},
			&models.Platform{},
			&models.Investment{},
			&models.Cashflow{},
			&models.CustomDistribution{},
			&models.CashTransaction{},
			&models.Alert{},
		)
		if err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
		log.Println("AutoMigrate completed")
	}

	handler := routes.InitRouter()
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.MaxBodyMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.RequestLogMiddleware(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweeper := services.NewSweeper(database.DB)
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sweeper.Interval = d
		} else {
			log.Printf("Invalid SWEEP_INTERVAL %q, using default %s", raw, sweeper.Interval)
		}
	}
	go sweeper.Start(sweepCtx)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
