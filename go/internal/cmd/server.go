package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/clients/anthropic"
)

func setupServer(services *Services, pool *pgxpool.Pool, provider *anthropic.Client) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// Register services
	api := router.Group("/api/v1")
	services.Drafts.RegisterRoutes(api)
	services.Players.RegisterRoutes(api)
	services.Recommendations.RegisterRoutes(api)

	// WebSocket endpoints live outside the API prefix
	services.Gateway.RegisterRoutes(&router.RouterGroup)

	setupHealthChecks(router, pool, provider)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler: c.Handler(router),
	}
}

func setupHealthChecks(router *gin.Engine, pool *pgxpool.Pool, provider *anthropic.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}

		// Provider trouble degrades recommendations to the ADP fallback,
		// it never takes readiness down with it.
		recsStatus := "fallback"
		switch {
		case provider == nil:
		case provider.Healthy():
			recsStatus = "ok"
		default:
			recsStatus = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "recommendations": recsStatus})
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
