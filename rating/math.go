package rating

import (
	"math"

	"github.com/chessfed/chess-rating-system/models"
)

const (
	// FloorRating is the minimum permissible rating on any track.
	FloorRating = 800

	// EstablishedGames is the games-played count at which a track
	// becomes established. The same threshold selects the K=40 band
	// for new players; see DESIGN.md for the 10-vs-30 discrepancy in
	// the historical call sites.
	EstablishedGames = 30
)

// ExpectedScore returns the expected score of a player against an
// opponent per the standard Elo formula: 1 / (1 + 10^((Rb-Ra)/400)).
func ExpectedScore(playerRating, opponentRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentRating-playerRating)/400.0))
}

// KFactor selects the Elo sensitivity coefficient. New players (fewer
// than 30 games on the track) use K=40; after that the K-factor steps
// down with rating.
func KFactor(currentRating, gamesPlayed int) int {
	switch {
	case gamesPlayed < EstablishedGames:
		return 40
	case currentRating < 2100:
		return 32
	case currentRating < 2400:
		return 24
	default:
		return 16
	}
}

// ComputeDelta returns the rounded rating change for a single rated
// event: round(K * (S - E)). Score is 1 for a win, 0.5 for a draw,
// 0 for a loss.
func ComputeDelta(playerRating, opponentRating int, score float64, k int) int {
	expected := ExpectedScore(playerRating, opponentRating)
	return int(math.Round(float64(k) * (score - expected)))
}

// ClampToFloor never lets a rating fall below the floor.
func ClampToFloor(r int) int {
	if r < FloorRating {
		return FloorRating
	}
	return r
}

// Score maps a game outcome to its Elo score value.
func Score(result models.GameResult) (float64, error) {
	switch result {
	case models.ResultWin:
		return 1, nil
	case models.ResultDraw:
		return 0.5, nil
	case models.ResultLoss:
		return 0, nil
	default:
		return 0, ErrInvalidScore
	}
}
