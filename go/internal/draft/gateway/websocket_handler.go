package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service exposes the WebSocket upgrade and stats endpoints.
type Service struct {
	manager *ConnectionManager
}

func NewService(manager *ConnectionManager) *Service {
	return &Service{
		manager: manager,
	}
}

// RegisterRoutes mounts the gateway endpoints on the router.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	ws := rg.Group("/ws")
	ws.GET("/drafts/:id", s.HandleDraftConnection)
	ws.GET("/stats", s.HandleConnectionStats)
}

// HandleDraftConnection upgrades the request to a WebSocket subscribed to a
// draft's event stream.
func (s *Service) HandleDraftConnection(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	// In production the user would come from a session or JWT
	userID := c.Query("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	// Upgrade writes its own error response on failure
	if err := s.manager.UpgradeConnection(c.Writer, c.Request, userID, draftID); err != nil {
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Str("user_id", userID).
			Msg("failed to upgrade WebSocket connection")
		return
	}
}

// HandleConnectionStats returns statistics about active connections
func (s *Service) HandleConnectionStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.GetConnectionStats())
}
