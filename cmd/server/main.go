package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcaster/internal/api"
	"shopcaster/internal/app/service"
	"shopcaster/internal/common/security"
	"shopcaster/internal/domain/repository"
	"shopcaster/internal/platform/config"
	"shopcaster/internal/platform/database"
	"shopcaster/internal/platform/gemini"
	"shopcaster/internal/platform/shopify"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database migrated.")

	// 3. Initialize Session Tokens
	tokenAuth := security.NewTokenAuth(cfg.SessionSecret)

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	productRepo := repository.NewPgProductRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	productService := service.NewProductService(productRepo, shopify.NewClient())
	postService := service.NewPostService(productService, gemini.NewClient(cfg.GeminiAPIKey))

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, tokenAuth, userRepo, authService, productService, postService)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
		// Scrape and generation calls wait on upstream services, so the write
		// timeout has to outlive the 30s upstream client timeouts.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
