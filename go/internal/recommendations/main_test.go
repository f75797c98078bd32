package recommendations

import (
	"os"
	"testing"

	"github.com/mcdev12/draftroom/go/internal/sports/base"
	_ "github.com/mcdev12/draftroom/go/internal/sports/mlb"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nba"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nfl"
)

func TestMain(m *testing.M) {
	for _, sport := range base.Sports() {
		if err := base.InitializeProfile(sport); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}
