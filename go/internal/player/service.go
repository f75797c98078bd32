package player

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// PlayerApp defines what the service layer needs from the player app
type PlayerApp interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayersBySport(ctx context.Context, sport models.Sport) ([]models.Player, error)
}

// Service exposes the player catalog over HTTP.
type Service struct {
	app PlayerApp
}

func NewService(app PlayerApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the player endpoints on the router group.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	players := rg.Group("/players")
	players.GET("", s.ListPlayers)
	players.GET("/:id", s.GetPlayer)
}

func (s *Service) ListPlayers(c *gin.Context) {
	sport := models.Sport(c.Query("sport"))
	if sport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sport query parameter is required"})
		return
	}

	players, err := s.app.ListPlayersBySport(c.Request.Context(), sport)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Service) GetPlayer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	player, err := s.app.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidSport):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
