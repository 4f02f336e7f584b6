package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	v1 "go-confab/cmd/api/router/v1"
	"go-confab/internal/infrastructure/auth"
	cacheAdapter "go-confab/internal/infrastructure/cache/adapter"
	cacheport "go-confab/internal/infrastructure/cache/port"
	"go-confab/internal/infrastructure/database"
	queueAdapter "go-confab/internal/infrastructure/queue/adapter"
	qport "go-confab/internal/infrastructure/queue/port"
	"go-confab/internal/pkg/chat/application/task"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	authn, err := auth.NewAuthenticatorFromEnv()
	if err != nil {
		log.Fatalf("failed to configure auth: %v", err)
	}

	// Redis-backed pieces are optional: without REDIS_URL the API runs with
	// no resolve cache and no background system messages.
	var cache cacheport.Cache
	if c, err := cacheAdapter.NewRedisAdapter(); err != nil {
		log.Printf("Warning: cache disabled: %v", err)
	} else {
		cache = c
		defer c.Close()
	}

	var client qport.Client
	if qc, err := queueAdapter.NewAsynqClientFromEnv(); err != nil {
		log.Printf("Warning: queue disabled: %v", err)
	} else {
		client = qc
		defer qc.Close()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run the task worker alongside the API when the queue is configured
	if client != nil {
		srv, err := queueAdapter.NewAsynqServer()
		if err != nil {
			log.Fatalf("failed to start task server: %v", err)
		}
		task.RegisterSystemMessageTask(srv, pool)
		go func() {
			if err := srv.Run(runCtx); err != nil {
				log.Printf("task server stopped: %v", err)
			}
		}()
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, authn, cache, client)

	// Start HTTP server (blocks until shutdown)
	_ = r.Run()
}
