package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"todo_api/internal/api"
	"todo_api/internal/app/service"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/repository"
	"todo_api/internal/platform/config"
	"todo_api/internal/platform/database"
	"todo_api/internal/platform/redisdb"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Println("Configuration loaded.")

	// 2. Initialize token signing
	tokens := security.NewTokenAuth(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize the selected storage backend
	var userRepo repository.UserRepository
	var todoRepo repository.TodoRepository

	switch cfg.TodoStore {
	case config.StorePostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer db.Close()
		log.Println("PostgreSQL connected.")
		userRepo = repository.NewPgUserRepository(db)
		todoRepo = repository.NewPgTodoRepository(db)
	case config.StoreRedis:
		rdb, err := redisdb.Connect(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Redis error: %v", err)
		}
		defer rdb.Close()
		log.Println("Redis connected.")
		userRepo = repository.NewRedisUserRepository(rdb)
		todoRepo = repository.NewRedisTodoRepository(rdb)
	case config.StoreMemory:
		log.Println("Using in-memory store; data will not survive a restart.")
		userRepo = repository.NewMemoryUserRepository()
		todoRepo = repository.NewMemoryTodoRepository()
	}

	// 4. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	todoService := service.NewTodoService(todoRepo)

	// 5. Optional bootstrap user
	if cfg.BootstrapUsername != "" && cfg.BootstrapPassword != "" {
		if err := authService.Bootstrap(context.Background(), cfg.BootstrapUsername, cfg.BootstrapPassword); err != nil {
			log.Fatalf("Bootstrap error: %v", err)
		}
	}

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(tokens, authService, todoService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
