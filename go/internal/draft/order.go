package draft

import (
	"fmt"

	"github.com/mcdev12/draftroom/go/internal/models"
)

// Slot locates an overall pick within the draft order.
type Slot struct {
	Round       int `json:"round"`
	PickInRound int `json:"pick_in_round"`
	TeamNumber  int `json:"team_number"` // 0 for auction slots, no seat owns them
}

// pickOrder computes which seat owns each overall pick. One strategy
// exists per draft type.
type pickOrder interface {
	// SlotFor returns the slot for a 1-based overall pick number.
	SlotFor(pickNumber, numTeams int) Slot
	// FixedOrder reports whether the strategy assigns seats itself.
	// When false the caller declares the seat and SlotFor carries only
	// the round bookkeeping.
	FixedOrder() bool
}

// orderFor selects the pick order strategy for a draft type.
func orderFor(draftType models.DraftType) (pickOrder, error) {
	switch draftType {
	case models.DraftTypeSnake:
		return snakeOrder{}, nil
	case models.DraftTypeLinear:
		return linearOrder{}, nil
	case models.DraftTypeAuction:
		return auctionOrder{}, nil
	default:
		return nil, fmt.Errorf("unsupported draft type: %s", draftType)
	}
}

type snakeOrder struct{}

// SlotFor reverses seat order every round: odd rounds run seat 1..N,
// even rounds run N..1.
func (snakeOrder) SlotFor(pickNumber, numTeams int) Slot {
	round, pickInRound := roundAndPick(pickNumber, numTeams)
	teamNumber := pickInRound
	if round%2 == 0 {
		teamNumber = numTeams - pickInRound + 1
	}
	return Slot{Round: round, PickInRound: pickInRound, TeamNumber: teamNumber}
}

func (snakeOrder) FixedOrder() bool { return true }

type linearOrder struct{}

// SlotFor keeps the same seat order every round.
func (linearOrder) SlotFor(pickNumber, numTeams int) Slot {
	round, pickInRound := roundAndPick(pickNumber, numTeams)
	return Slot{Round: round, PickInRound: pickInRound, TeamNumber: pickInRound}
}

func (linearOrder) FixedOrder() bool { return true }

type auctionOrder struct{}

// SlotFor tracks round bookkeeping only, any seat may win any slot.
func (auctionOrder) SlotFor(pickNumber, numTeams int) Slot {
	round, pickInRound := roundAndPick(pickNumber, numTeams)
	return Slot{Round: round, PickInRound: pickInRound}
}

func (auctionOrder) FixedOrder() bool { return false }

func roundAndPick(pickNumber, numTeams int) (round, pickInRound int) {
	round = (pickNumber-1)/numTeams + 1
	pickInRound = pickNumber - (round-1)*numTeams
	return round, pickInRound
}
