package draft

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/player"
)

// DraftApp defines what the service layer needs from the draft app
type DraftApp interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	AbandonDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	GetDraftPicks(ctx context.Context, draftID uuid.UUID) ([]PickWithPlayer, error)
	GetAvailablePlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error)
	MakePick(ctx context.Context, req MakePickRequest) (*models.DraftPick, error)
	UndoLastPick(ctx context.Context, req UndoPickRequest) (*models.DraftPick, error)
}

// Service exposes the draft app over HTTP.
type Service struct {
	app DraftApp
}

func NewService(app DraftApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the draft endpoints on the router group.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/drafts")
	drafts.POST("", s.CreateDraft)
	drafts.GET("", s.ListDrafts)
	drafts.GET("/:id", s.GetDraft)
	drafts.DELETE("/:id", s.DeleteDraft)
	drafts.POST("/:id/abandon", s.AbandonDraft)
	drafts.GET("/:id/picks", s.GetDraftPicks)
	drafts.POST("/:id/picks", s.MakePick)
	drafts.POST("/:id/picks/undo", s.UndoPick)
	drafts.GET("/:id/available", s.GetAvailablePlayers)
}

func (s *Service) CreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := s.app.CreateDraft(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (s *Service) GetDraft(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := s.app.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *Service) ListDrafts(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	drafts, err := s.app.ListDraftsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

func (s *Service) DeleteDraft(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.app.DeleteDraft(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) AbandonDraft(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := s.app.AbandonDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *Service) GetDraftPicks(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	picks, err := s.app.GetDraftPicks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"picks": picks})
}

func (s *Service) MakePick(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req MakePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.DraftID = id

	pick, err := s.app.MakePick(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pick)
}

func (s *Service) UndoPick(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UndoPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.DraftID = id

	pick, err := s.app.UndoLastPick(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pick)
}

func (s *Service) GetAvailablePlayers(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	players, err := s.app.GetAvailablePlayers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrDraftNotFound), errors.Is(err, player.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbiddenUndo):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyDrafted),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrOutOfTurn),
		errors.Is(err, ErrDraftComplete),
		errors.Is(err, ErrDraftAbandoned),
		errors.Is(err, ErrNoPicksToUndo):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
