package draft

import "errors"

// Error kinds the draft engine reports. Callers match with errors.Is
// to map them onto transport status codes.
var (
	ErrDraftNotFound  = errors.New("draft not found")
	ErrAlreadyDrafted = errors.New("player already drafted")
	ErrDraftComplete  = errors.New("draft is completed")
	ErrDraftAbandoned = errors.New("draft is abandoned")
	ErrOutOfTurn      = errors.New("not this team's turn")
	ErrConflict       = errors.New("conflict with a concurrent update")
	ErrNoPicksToUndo  = errors.New("no picks to undo")
	ErrForbiddenUndo  = errors.New("last pick belongs to another team")
	ErrInvalidInput   = errors.New("invalid input")
)
