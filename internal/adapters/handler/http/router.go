package http

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/RishabJha134/habitforge-engine/internal/adapters/handler/http/middleware"
	"github.com/RishabJha134/habitforge-engine/internal/core/services"
	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

type RouterDependencies struct {
	SessionHandler *SessionHandler
	HabitHandler   *HabitHandler
	StatsHandler   *StatsHandler
	ExportHandler  *ExportHandler
	TokenService   *services.TokenService
	Sessions       *store.SessionStore
	Substrate      store.Substrate
	Redis          *redis.Client
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, 100, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		storageStatus := "connected"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := deps.Substrate.Get(ctx, store.KeySettings); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			storageStatus = "unreachable"
		}

		statusCode := 200
		if storageStatus == "unreachable" {
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"status":  "ok",
			"storage": storageStatus,
			"uptime":  time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	deps.SessionHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService, deps.Sessions))
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
		deps.ExportHandler.RegisterRoutes(protected)
	}

	return router
}
