package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/draftroom/go/internal/dbconfig"
)

// seedPlayer mirrors one row of the players JSON snapshot.
type seedPlayer struct {
	ID                uuid.UUID `json:"id"`
	Sport             string    `json:"sport"`
	FullName          string    `json:"full_name"`
	Team              string    `json:"team"`
	Position          string    `json:"position"`
	EligiblePositions []string  `json:"eligible_positions"`
	ADP               *int      `json:"adp"`
}

func main() {
	file := flag.String("file", "go/internal/assets/players.json", "path to the players JSON snapshot")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
		os.Exit(1)
	}
	var players []seedPlayer
	if err := json.Unmarshal(data, &players); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal players: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dbconfig.NewConfigFromEnv().DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "ping database: %v\n", err)
		os.Exit(1)
	}

	total, inserted, skipped, errs := len(players), 0, 0, 0
	for _, p := range players {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if len(p.EligiblePositions) == 0 {
			p.EligiblePositions = []string{p.Position}
		}

		res, err := db.Exec(`
            INSERT INTO players (
              id, sport, full_name, team, position, eligible_positions, adp
            ) VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (id) DO NOTHING
        `, p.ID, p.Sport, p.FullName, p.Team, p.Position, pq.Array(p.EligiblePositions), p.ADP)
		if err != nil {
			errs++
			continue
		}
		affected, err := res.RowsAffected()
		if err != nil || affected == 0 {
			skipped++
		} else {
			inserted++
		}
	}
	fmt.Printf(
		"Players seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
