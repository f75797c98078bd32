package nba

import (
	"fmt"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// Profile implements the SportProfile interface for NBA drafts.
type Profile struct {
	positions    []string
	scoringTypes []models.ScoringType
	ideal        map[string]int
}

// init registers the NBA profile with the base registry.
func init() {
	profile := &Profile{}
	if err := base.RegisterProfile(models.SportNBA, profile); err != nil {
		panic(fmt.Sprintf("Failed to register NBA profile: %v", err))
	}
}

// Init loads the profile defaults.
func (p *Profile) Init() error {
	p.positions = []string{"PG", "SG", "SF", "PF", "C"}
	p.scoringTypes = []models.ScoringType{
		models.ScoringTypePoints,
		models.ScoringTypeCategories,
		models.ScoringTypeRoto,
	}
	p.ideal = map[string]int{
		"PG": 2,
		"SG": 2,
		"SF": 2,
		"PF": 2,
		"C":  2,
	}
	return nil
}

func (p *Profile) Sport() models.Sport {
	return models.SportNBA
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
