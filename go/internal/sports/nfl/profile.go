package nfl

import (
	"fmt"

	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sports/base"
)

// Profile implements the SportProfile interface for NFL drafts.
type Profile struct {
	positions    []string
	scoringTypes []models.ScoringType
	ideal        map[string]int
}

// init registers the NFL profile with the base registry.
func init() {
	profile := &Profile{}
	if err := base.RegisterProfile(models.SportNFL, profile); err != nil {
		panic(fmt.Sprintf("Failed to register NFL profile: %v", err))
	}
}

// Init loads the profile defaults.
func (p *Profile) Init() error {
	p.positions = []string{"QB", "RB", "WR", "TE", "K", "DEF"}
	p.scoringTypes = []models.ScoringType{
		models.ScoringTypeStandard,
		models.ScoringTypePPR,
		models.ScoringTypeHalfPPR,
	}
	p.ideal = map[string]int{
		"QB":  2,
		"RB":  5,
		"WR":  5,
		"TE":  2,
		"K":   1,
		"DEF": 1,
	}
	return nil
}

func (p *Profile) Sport() models.Sport {
	return models.SportNFL
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
