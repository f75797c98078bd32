package mlb

import (
	"fmt"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// Profile implements the SportProfile interface for MLB drafts.
type Profile struct {
	positions    []string
	scoringTypes []models.ScoringType
	ideal        map[string]int
}

// init registers the MLB profile with the base registry.
func init() {
	profile := &Profile{}
	if err := base.RegisterProfile(models.SportMLB, profile); err != nil {
		panic(fmt.Sprintf("Failed to register MLB profile: %v", err))
	}
}

// Init loads the profile defaults.
func (p *Profile) Init() error {
	p.positions = []string{"C", "1B", "2B", "3B", "SS", "OF", "SP", "RP"}
	p.scoringTypes = []models.ScoringType{
		models.ScoringTypePoints,
		models.ScoringTypeCategories,
		models.ScoringTypeRoto,
	}
	p.ideal = map[string]int{
		"C":  1,
		"1B": 1,
		"2B": 1,
		"3B": 1,
		"SS": 1,
		"OF": 3,
		"SP": 4,
		"RP": 2,
	}
	return nil
}

func (p *Profile) Sport() models.Sport {
	return models.SportMLB
}

func (p *Profile) Positions() []string {
	return p.positions
}

func (p *Profile) ScoringTypes() []models.ScoringType {
	return p.scoringTypes
}

func (p *Profile) IdealRoster() map[string]int {
	return p.ideal
}

// SetIdealRoster replaces the default composition, typically from config.
func (p *Profile) SetIdealRoster(ideal map[string]int) {
	p.ideal = ideal
}
