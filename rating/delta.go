package rating

import (
	"fmt"

	"github.com/chessfed/chess-rating-system/models"
)

// Roster maps player id to the player's state at the start of the
// report run. Deltas are computed against pre-run ratings, so the
// order in which players are processed does not matter.
type Roster map[int]models.Player

// DeltaSource yields the rating change one result is worth. Two
// implementations exist: HeadToHeadDelta computes the change from the
// Elo formula against the opponent in the roster (canonical), and
// PrecomputedDelta trusts a change written upstream (legacy imports).
type DeltaSource interface {
	Delta(player models.Player, track Track, result models.TournamentResult, roster Roster) (int, error)
}

type HeadToHeadDelta struct{}

func (HeadToHeadDelta) Delta(player models.Player, track Track, result models.TournamentResult, roster Roster) (int, error) {
	opponent, ok := roster[result.OpponentID]
	if !ok {
		return 0, fmt.Errorf("%w: player %d vs opponent %d", ErrUnknownOpponent, result.PlayerID, result.OpponentID)
	}

	score, err := Score(result.Result)
	if err != nil {
		return 0, fmt.Errorf("player %d result %q: %w", result.PlayerID, result.Result, err)
	}

	tr, err := TrackState(player, track)
	if err != nil {
		return 0, err
	}
	oppTr, err := TrackState(opponent, track)
	if err != nil {
		return 0, err
	}

	k := KFactor(tr.Rating, tr.GamesPlayed)
	return ComputeDelta(tr.Rating, oppTr.Rating, score, k), nil
}

type PrecomputedDelta struct{}

func (PrecomputedDelta) Delta(player models.Player, track Track, result models.TournamentResult, roster Roster) (int, error) {
	if result.RatingChange == nil {
		return 0, fmt.Errorf("%w: player %d", ErrMissingRatingChange, result.PlayerID)
	}
	return *result.RatingChange, nil
}
