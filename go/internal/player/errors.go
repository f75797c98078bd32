package player

import "errors"

var (
	// ErrPlayerNotFound is returned when no catalog entry exists for an ID
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidSport is returned when no sport profile is registered for
	// the requested sport
	ErrInvalidSport = errors.New("invalid sport")
)
