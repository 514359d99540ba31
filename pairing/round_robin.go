package pairing

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate produces a full round-robin schedule using the circle
// method: player ids are laid out in two rows, the first id stays
// fixed and the rest rotate one seat per round. With an odd number of
// players one seat is a bye.
//
// Colors alternate by round for the fixed seat; for the rest the top
// row takes white. Exact color balance is not guaranteed for every
// player, which matches how organizers run small open events.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) ([]Pairing, error) {
	participants := params.Participants
	if len(participants) < 2 {
		return nil, fmt.Errorf("round robin: not enough participants (found %d, min 2 required)", len(participants))
	}

	ids := make([]int, 0, len(participants)+1)
	for _, p := range participants {
		ids = append(ids, p.PlayerID)
	}

	// Pad with a bye seat when the count is odd. 0 is never a valid
	// player id.
	const byeSeat = 0
	if len(ids)%2 != 0 {
		ids = append(ids, byeSeat)
	}

	n := len(ids)
	rounds := n - 1
	pairings := make([]Pairing, 0, rounds*n/2)

	for round := 1; round <= rounds; round++ {
		board := 0
		for i := 0; i < n/2; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == byeSeat || b == byeSeat {
				bye := a
				if a == byeSeat {
					bye = b
				}
				pairings = append(pairings, Pairing{Round: round, Board: 0, WhiteID: bye})
				continue
			}

			board++
			white, black := a, b
			if i == 0 && round%2 == 0 {
				white, black = b, a
			}
			pairings = append(pairings, Pairing{Round: round, Board: board, WhiteID: white, BlackID: &black})
		}

		// Rotate all seats except the first.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}

	return pairings, nil
}
