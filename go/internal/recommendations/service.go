package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/draft"
)

// RecommendationsApp defines what the service layer needs from the app
type RecommendationsApp interface {
	GetRecommendations(ctx context.Context, draftID uuid.UUID) (*Response, error)
}

// Service exposes the recommendation engine over HTTP.
type Service struct {
	app RecommendationsApp
}

func NewService(app RecommendationsApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the recommendation endpoint on the router group.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/drafts/:id/recommendations", s.GetRecommendations)
}

func (s *Service) GetRecommendations(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	resp, err := s.app.GetRecommendations(c.Request.Context(), draftID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, draft.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
