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

	"github.com/eaglebank/user-directory/internal/command"
	"github.com/eaglebank/user-directory/internal/config"
	"github.com/eaglebank/user-directory/internal/handler"
	"github.com/eaglebank/user-directory/internal/query"
	"github.com/eaglebank/user-directory/internal/repository"
	"github.com/eaglebank/user-directory/shared/events"
	"github.com/eaglebank/user-directory/shared/middleware"
	redisClient "github.com/eaglebank/user-directory/shared/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	// In-memory store, seeded on every start
	repo := repository.NewSeededUserRepository()
	log.Printf("Seeded user directory with %d users", repo.Count())

	// Event stream (optional)
	var publisher command.EventPublisher = events.NopPublisher{}
	if cfg.EventsEnabled() {
		redis, err := redisClient.NewClient(context.Background(), redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()
		publisher = events.NewPublisher(redis.Client)
		log.Printf("Publishing user events to %s on %s", events.UserEventsStream, cfg.Redis.Addr)
	}

	commandSvc := command.NewUserCommandService(repo, publisher)
	querySvc := query.NewUserQueryService(repo)
	userHandler := handler.NewUserHandler(commandSvc, querySvc)

	router := handler.NewRouter(userHandler, gin.Recovery(), middleware.LoggingMiddleware())

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("User directory starting on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
