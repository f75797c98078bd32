package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/mcdev12/draftroom/go/clients/anthropic"
	"github.com/mcdev12/draftroom/go/internal/draft"
	"github.com/mcdev12/draftroom/go/internal/draft/gateway"
	"github.com/mcdev12/draftroom/go/internal/player"
	"github.com/mcdev12/draftroom/go/internal/recommendations"
)

// Services holds the HTTP-facing services plus the draft app the janitor
// drives directly.
type Services struct {
	Drafts          *draft.Service
	Players         *player.Service
	Recommendations *recommendations.Service
	Gateway         *gateway.Service

	DraftApp *draft.App
}

func setupServices(pool *pgxpool.Pool, redisClient *redis.Client, provider *anthropic.Client, manager *gateway.ConnectionManager, config *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Players
	playerRepo := player.NewRepository(pool)
	playerApp := player.NewApp(playerRepo)
	playerService := player.NewService(playerApp)

	// Drafts
	draftRepo := draft.NewRepository(pool)
	draftApp := draft.NewApp(draftRepo, playerRepo, clockwork.NewRealClock())
	draftService := draft.NewService(draftApp)

	// Recommendations. Nil checks keep a missing provider or cache as a
	// nil interface instead of a typed nil.
	var prov recommendations.Provider
	if provider != nil {
		prov = provider
	}
	var cache recommendations.ResponseCache
	if redisClient != nil {
		cache = recommendations.NewCache(redisClient, config.CacheTTL())
	}
	recsApp := recommendations.NewApp(draftApp, prov, cache, recommendations.Config{
		MaxTokens:   config.Recommendations.MaxTokens,
		Temperature: config.Recommendations.Temperature,
		Timeout:     config.RecommendationTimeout(),
	})
	recsService := recommendations.NewService(recsApp)

	// Gateway
	gatewayService := gateway.NewService(manager)

	return &Services{
		Drafts:          draftService,
		Players:         playerService,
		Recommendations: recsService,
		Gateway:         gatewayService,
		DraftApp:        draftApp,
	}
}
