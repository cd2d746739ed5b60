/**
 * @description
 * Entry point for the platform backend. Loads configuration, connects the
 * PostgreSQL pool, wires the optional RabbitMQ producer and Redis login rate
 * limiter, starts the cron scheduler and the chi HTTP server, and shuts
 * everything down gracefully on SIGINT/SIGTERM.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5/pgxpool: Database connection pool.
 * - github.com/joho/godotenv: Optional .env loading for local development.
 * - github.com/redis/go-redis/v9: Login rate limiter backend.
 * - internal/{api,app,config,store,token}, pkg/rabbitmq.
 */

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/api"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/app"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/config"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/store"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
	"github.com/greatwilliams57-droid/westmark-bank-backend/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Establish the database connection pool.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database URL: %v", err)
	}
	dbConfig.MaxConns = 10
	dbConfig.MinConns = 2
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute
	dbConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer dbpool.Close()
	log.Println("Database connection established")

	repo := store.NewPostgresRepository(dbpool)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Printf("Warning: failed ensuring tables (may already exist): %v", err)
	}

	// Event producer is optional; the service runs without a broker.
	var producer rabbitmq.Publisher = &rabbitmq.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		if p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
			log.Printf("WARNING: Failed to connect to RabbitMQ at startup: %v. Continuing without MQ.", err)
		} else {
			producer = p
			defer producer.Close()
			log.Println("RabbitMQ producer connected")
		}
	}

	// Login rate limiter is optional; without Redis every attempt is allowed.
	var limiter *app.LoginRateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: invalid REDIS_URL, login rate limiting disabled: %v", err)
		} else {
			limiter = app.NewLoginRateLimiter(redis.NewClient(opts), "platform:rate_limit", cfg.LoginRateLimit, time.Minute)
			log.Println("Redis login rate limiter enabled")
		}
	}

	issuer := token.NewIssuer(cfg.JWTSecret)
	service := app.NewService(repo, issuer, producer, limiter)

	scheduler := app.NewScheduler(service, cfg.PendingDigestSchedule)
	scheduler.Start()

	handlers := api.NewHandlers(service)
	router := api.NewRouter(handlers, issuer)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
