package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	adapterHTTP "github.com/RishabJha134/habitforge-engine/internal/adapters/handler/http"
	"github.com/RishabJha134/habitforge-engine/internal/adapters/kvstore"
	"github.com/RishabJha134/habitforge-engine/internal/core/services"
	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildSubstrate(ctx context.Context) (store.Substrate, *redis.Client, error) {
	driver := envOr("STORAGE_DRIVER", "memory")

	switch driver {
	case "memory":
		log.Println("Using in-memory storage (state is lost on restart).")
		return kvstore.NewMemory(), nil, nil

	case "file":
		path := envOr("STORAGE_FILE", "habitforge.json")
		sub, err := kvstore.NewFile(path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using file storage at %s", path)
		return sub, nil, nil

	case "redis":
		dbIndex, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
		client, err := kvstore.NewRedisClient(
			envOr("REDIS_HOST", "localhost"),
			envOr("REDIS_PORT", "6379"),
			os.Getenv("REDIS_PASSWORD"),
			dbIndex,
		)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Using redis storage.")
		return kvstore.NewRedis(client), client, nil

	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "localhost"), envOr("DB_PORT", "5432"),
			os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		sub := kvstore.NewPostgres(db)
		if err := sub.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		log.Println("Using postgres storage.")
		return sub, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	ctx := context.Background()

	substrate, redisClient, err := buildSubstrate(ctx)
	if err != nil {
		log.Fatalf("Critical: storage init failed: %v", err)
	}

	sessions := store.NewSessionStore(substrate)
	habits := store.NewHabitStore(substrate, sessions)

	// Restore any persisted session before serving, the way the original
	// client restored it before first render.
	sessions.Restore(ctx)
	if user := sessions.Current(); user != nil {
		habits.LoadForUser(ctx, user.ID)
		log.Printf("Restored session for user %s", user.ID)
	}

	tokenSecret := envOr("TOKEN_SECRET", "")
	if tokenSecret == "" {
		log.Fatal("Critical: TOKEN_SECRET is required")
	}

	tokenService := services.NewTokenService(tokenSecret, "habitforge-engine", 24*time.Hour, sessions)
	statsService := services.NewStatsService(habits)
	exportService := services.NewExportService(sessions, habits)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		SessionHandler: adapterHTTP.NewSessionHandler(sessions, habits, tokenService),
		HabitHandler:   adapterHTTP.NewHabitHandler(habits),
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		ExportHandler:  adapterHTTP.NewExportHandler(exportService),
		TokenService:   tokenService,
		Sessions:       sessions,
		Substrate:      substrate,
		Redis:          redisClient,
		StartTime:      startTime,
	})

	serverPort := envOr("PORT", "8080")

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("HabitForge Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
