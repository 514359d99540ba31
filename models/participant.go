package models

import "time"

// Participant is a player's registration in a tournament.
// Registration alone does not rate a player: a participant without a
// matching result row is skipped by report generation.
type Participant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
