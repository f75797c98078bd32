package base

import (
	"fmt"
	"sync"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// SportProfile defines what the draft engine needs to know about a sport.
type SportProfile interface {
	Init() error
	Sport() models.Sport
	// Positions returns the draftable positions in display order.
	Positions() []string
	// ScoringTypes returns the scoring formats valid for the sport.
	ScoringTypes() []models.ScoringType
	// IdealRoster returns the position counts a balanced roster works toward.
	IdealRoster() map[string]int
}

var (
	registry   = make(map[models.Sport]SportProfile)
	registryMu sync.RWMutex
)

// RegisterProfile adds a profile implementation under a sport key.
// It should be called in each sport profile's init() function.
// The profile will be initialized later when retrieved.
func RegisterProfile(sport models.Sport, profile SportProfile) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if sport == "" {
		return fmt.Errorf("profile sport cannot be empty")
	}
	if _, exists := registry[sport]; exists {
		return fmt.Errorf("profile already registered for sport %q", sport)
	}
	registry[sport] = profile
	return nil
}

// GetProfile retrieves a profile by sport or returns an error if not found.
func GetProfile(sport models.Sport) (SportProfile, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	profile, exists := registry[sport]
	if !exists {
		return nil, fmt.Errorf("no sport profile registered for %q", sport)
	}
	return profile, nil
}

// InitializeProfile initializes a specific profile.
func InitializeProfile(sport models.Sport) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	profile, exists := registry[sport]
	if !exists {
		return fmt.Errorf("no sport profile registered for %q", sport)
	}
	if err := profile.Init(); err != nil {
		return fmt.Errorf("failed to init profile %q: %w", sport, err)
	}
	return nil
}

// idealRosterSetter is implemented by profiles whose ideal composition
// can be replaced from config.
type idealRosterSetter interface {
	SetIdealRoster(ideal map[string]int)
}

// OverrideIdealRoster replaces the ideal roster composition for a sport.
// Call it after InitializeProfile so the override survives.
func OverrideIdealRoster(sport models.Sport, ideal map[string]int) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	profile, exists := registry[sport]
	if !exists {
		return fmt.Errorf("no sport profile registered for %q", sport)
	}
	setter, ok := profile.(idealRosterSetter)
	if !ok {
		return fmt.Errorf("profile %q does not support ideal roster overrides", sport)
	}
	setter.SetIdealRoster(ideal)
	return nil
}

// Sports returns every registered sport.
func Sports() []models.Sport {
	registryMu.RLock()
	defer registryMu.RUnlock()
	sports := make([]models.Sport, 0, len(registry))
	for sport := range registry {
		sports = append(sports, sport)
	}
	return sports
}

// SupportsScoringType reports whether the profile accepts the given
// scoring format.
func SupportsScoringType(profile SportProfile, scoringType models.ScoringType) bool {
	for _, st := range profile.ScoringTypes() {
		if st == scoringType {
			return true
		}
	}
	return false
}
