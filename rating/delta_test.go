package rating

import (
	"errors"
	"testing"

	"github.com/chessfed/chess-rating-system/models"
)

func rosterOfTwo() (models.Player, models.Player, Roster) {
	player := testPlayer()
	player.Classical.Rating = 1000
	player.Classical.GamesPlayed = 9

	opponent := testPlayer()
	opponent.ID = 8
	opponent.Classical.Rating = 1000

	return player, opponent, Roster{player.ID: player, opponent.ID: opponent}
}

func TestHeadToHeadDelta(t *testing.T) {
	player, opponent, roster := rosterOfTwo()

	result := models.TournamentResult{
		PlayerID:   player.ID,
		OpponentID: opponent.ID,
		Result:     models.ResultLoss,
	}

	// K=40 (9 games), expected 0.5 against an equal opponent.
	delta, err := HeadToHeadDelta{}.Delta(player, TrackClassical, result, roster)
	if err != nil {
		t.Fatalf("Delta: %v", err)
	}
	if delta != -20 {
		t.Errorf("delta = %d, want -20", delta)
	}
}

func TestHeadToHeadDeltaUnknownOpponent(t *testing.T) {
	player, _, roster := rosterOfTwo()
	result := models.TournamentResult{PlayerID: player.ID, OpponentID: 999, Result: models.ResultWin}

	_, err := HeadToHeadDelta{}.Delta(player, TrackClassical, result, roster)
	if !errors.Is(err, ErrUnknownOpponent) {
		t.Errorf("err = %v, want ErrUnknownOpponent", err)
	}
}

func TestHeadToHeadDeltaInvalidResult(t *testing.T) {
	player, opponent, roster := rosterOfTwo()
	result := models.TournamentResult{PlayerID: player.ID, OpponentID: opponent.ID, Result: "forfeit"}

	_, err := HeadToHeadDelta{}.Delta(player, TrackClassical, result, roster)
	if !errors.Is(err, ErrInvalidScore) {
		t.Errorf("err = %v, want ErrInvalidScore", err)
	}
}

func TestPrecomputedDelta(t *testing.T) {
	player, opponent, roster := rosterOfTwo()
	change := -15
	result := models.TournamentResult{
		PlayerID:     player.ID,
		OpponentID:   opponent.ID,
		Result:       models.ResultLoss,
		RatingChange: &change,
	}

	delta, err := PrecomputedDelta{}.Delta(player, TrackClassical, result, roster)
	if err != nil {
		t.Fatalf("Delta: %v", err)
	}
	if delta != -15 {
		t.Errorf("delta = %d, want -15", delta)
	}
}

func TestPrecomputedDeltaMissingChange(t *testing.T) {
	player, opponent, roster := rosterOfTwo()
	result := models.TournamentResult{PlayerID: player.ID, OpponentID: opponent.ID, Result: models.ResultLoss}

	_, err := PrecomputedDelta{}.Delta(player, TrackClassical, result, roster)
	if !errors.Is(err, ErrMissingRatingChange) {
		t.Errorf("err = %v, want ErrMissingRatingChange", err)
	}
}
