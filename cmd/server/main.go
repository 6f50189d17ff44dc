package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/picklewheel/picklewheel/internal/api"
	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/config"
	"github.com/picklewheel/picklewheel/internal/identity"
	"github.com/picklewheel/picklewheel/internal/repository/postgres"
	"github.com/picklewheel/picklewheel/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Usage counters (fail safe when redis is down)
	counters := cache.NewCounters(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Identity verification: Google in any real deployment, locally signed
	// tokens as a development fallback
	var verifier identity.Verifier
	if cfg.GoogleClientID != "" {
		verifier = identity.NewGoogleVerifier(cfg.GoogleClientID)
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, accepting locally signed tokens")
		verifier = identity.NewStaticVerifier(cfg.JWTSecret)
	}

	// Initialize services
	services := service.NewServices(repos, verifier, counters, cfg)

	// Initialize router
	router := api.NewRouter(services, counters, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
