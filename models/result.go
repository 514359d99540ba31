package models

import "time"

// GameResult is a player's outcome in a tournament.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultDraw GameResult = "draw"
	ResultLoss GameResult = "loss"
)

// TournamentResult is one player's recorded outcome for a tournament.
// RatingChange is only present on rows written by the legacy import
// path where the delta was computed upstream; the canonical report run
// computes the delta head-to-head against OpponentID.
type TournamentResult struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	PlayerID     int        `json:"player_id" db:"player_id"`
	OpponentID   int        `json:"opponent_id" db:"opponent_id"`
	Result       GameResult `json:"result" db:"result"`
	RatingChange *int       `json:"rating_change,omitempty" db:"rating_change"`
	Position     *int       `json:"position,omitempty" db:"position"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
