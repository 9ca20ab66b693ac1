package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"taskly-be/internal/cache"
	"taskly-be/internal/config"
	"taskly-be/internal/database"
	"taskly-be/internal/jwt"
	"taskly-be/internal/repository"
	"taskly-be/internal/routes"
	"taskly-be/internal/service"
)

func main() {
	// Missing JWT_SECRET or DATABASE_URL stops the process here
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	jwtService, err := jwt.NewJWTService(cfg.JWTSecret, config.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// An unreachable database is logged, not fatal; requests fail until it recovers
	db, err := database.NewConnection(cfg.DatabaseURL)
	if db == nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err != nil {
		log.Printf("Warning: %v. Continuing without a database connection; migrations skipped.", err)
	} else if err := database.RunMigrations(db); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: %v. Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, jwtService, config.BcryptCost)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	router := routes.NewRouter(routes.Dependencies{
		Config:      cfg,
		JWTService:  jwtService,
		AuthService: authService,
		TaskService: taskService,
	})
	defer router.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on http://127.0.0.1:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
