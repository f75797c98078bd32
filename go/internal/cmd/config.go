package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// Config is the yaml application config. Connection settings stay in the
// environment, the yaml covers behavior.
type Config struct {
	Sports struct {
		Enabled []string `yaml:"enabled"`
		// IdealRosters overrides a sport's default ideal composition,
		// keyed by sport then position.
		IdealRosters map[string]map[string]int `yaml:"ideal_rosters"`
	} `yaml:"sports"`
	Recommendations struct {
		MaxTokens       int     `yaml:"max_tokens"`
		Temperature     float64 `yaml:"temperature"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
		CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	} `yaml:"recommendations"`
	Janitor struct {
		Schedule    string `yaml:"schedule"`
		IdleMinutes int    `yaml:"idle_minutes"`
	} `yaml:"janitor"`
}

func defaultConfig() *Config {
	config := &Config{}
	config.Sports.Enabled = []string{"nfl", "nba", "mlb"}
	config.Recommendations.MaxTokens = 1024
	config.Recommendations.Temperature = 0.7
	config.Recommendations.TimeoutSeconds = 10
	config.Recommendations.CacheTTLSeconds = 60
	config.Janitor.Schedule = "@every 5m"
	config.Janitor.IdleMinutes = 360
	return config
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("config file not found, using defaults")
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// RecommendationTimeout bounds a single provider call.
func (c *Config) RecommendationTimeout() time.Duration {
	return time.Duration(c.Recommendations.TimeoutSeconds) * time.Second
}

// CacheTTL is how long a computed recommendation response stays cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Recommendations.CacheTTLSeconds) * time.Second
}

// IdleWindow is how long a draft may sit untouched before the janitor
// abandons it.
func (c *Config) IdleWindow() time.Duration {
	return time.Duration(c.Janitor.IdleMinutes) * time.Minute
}

// setupSports initializes the profile for every enabled sport. Profiles
// register themselves at import time, initialization waits until config
// and environment are loaded.
func setupSports(config *Config) error {
	for _, name := range config.Sports.Enabled {
		sport := models.Sport(name)
		if err := base.InitializeProfile(sport); err != nil {
			return fmt.Errorf("failed to initialize sport %q: %w", name, err)
		}
		if ideal := config.Sports.IdealRosters[name]; len(ideal) > 0 {
			if err := base.OverrideIdealRoster(sport, ideal); err != nil {
				return fmt.Errorf("failed to override ideal roster for %q: %w", name, err)
			}
			log.Info().Str("sport", name).Msg("applied ideal roster override")
		}
		log.Info().Str("sport", name).Msg("initialized sport profile")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
