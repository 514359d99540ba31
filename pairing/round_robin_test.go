package pairing

import (
	"context"
	"fmt"
	"testing"

	"github.com/chessfed/chess-rating-system/models"
)

func participantsWithIDs(ids ...int) []*models.Participant {
	out := make([]*models.Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, &models.Participant{PlayerID: id})
	}
	return out
}

func TestRoundRobinEveryPairMeetsOnce(t *testing.T) {
	gen := NewRoundRobinGenerator()
	pairings, err := gen.Generate(context.Background(), GenerateParams{
		Participants: participantsWithIDs(11, 22, 33, 44),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	seen := make(map[string]int)
	for _, p := range pairings {
		if p.BlackID == nil {
			t.Fatalf("unexpected bye with an even field: %+v", p)
		}
		if p.WhiteID == *p.BlackID {
			t.Fatalf("self pairing: %+v", p)
		}
		a, b := p.WhiteID, *p.BlackID
		if a > b {
			a, b = b, a
		}
		seen[fmt.Sprintf("%d-%d", a, b)]++
	}

	if len(pairings) != 6 {
		t.Errorf("got %d pairings, want 6", len(pairings))
	}
	for pair, count := range seen {
		if count != 1 {
			t.Errorf("pair %s met %d times, want once", pair, count)
		}
	}
}

func TestRoundRobinOddFieldGetsByes(t *testing.T) {
	gen := NewRoundRobinGenerator()
	pairings, err := gen.Generate(context.Background(), GenerateParams{
		Participants: participantsWithIDs(1, 2, 3, 4, 5),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	byesByPlayer := make(map[int]int)
	roundsSeen := make(map[int]bool)
	for _, p := range pairings {
		roundsSeen[p.Round] = true
		if p.BlackID == nil {
			byesByPlayer[p.WhiteID]++
		}
	}

	if len(roundsSeen) != 5 {
		t.Errorf("got %d rounds, want 5", len(roundsSeen))
	}
	// Each of the five players sits out exactly once.
	if len(byesByPlayer) != 5 {
		t.Fatalf("players with byes = %d, want 5 (%v)", len(byesByPlayer), byesByPlayer)
	}
	for id, count := range byesByPlayer {
		if count != 1 {
			t.Errorf("player %d has %d byes, want 1", id, count)
		}
	}
}

func TestRoundRobinRejectsTinyField(t *testing.T) {
	gen := NewRoundRobinGenerator()
	if _, err := gen.Generate(context.Background(), GenerateParams{
		Participants: participantsWithIDs(1),
	}); err == nil {
		t.Fatal("expected error for a single participant")
	}
}
