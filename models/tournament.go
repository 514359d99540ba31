package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
// Transitions are monotonic:
// pending -> approved -> ongoing -> completed -> processed,
// or pending -> rejected. processed and rejected are terminal.
type TournamentStatus string

const (
	StatusPending   TournamentStatus = "pending"
	StatusApproved  TournamentStatus = "approved"
	StatusOngoing   TournamentStatus = "ongoing"
	StatusCompleted TournamentStatus = "completed"
	StatusProcessed TournamentStatus = "processed"
	StatusRejected  TournamentStatus = "rejected"
)

// TournamentCategory selects which rating track the tournament is rated on.
type TournamentCategory string

const (
	CategoryClassical TournamentCategory = "classical"
	CategoryRapid     TournamentCategory = "rapid"
	CategoryBlitz     TournamentCategory = "blitz"
)

// Tournament представляет турнир.
type Tournament struct {
	ID              int                `json:"id" db:"id"`
	Name            string             `json:"name" db:"name"`
	Description     *string            `json:"description,omitempty" db:"description"`
	Category        TournamentCategory `json:"category" db:"category"`
	OrganizerID     int                `json:"organizer_id" db:"organizer_id"`
	StartDate       time.Time          `json:"start_date" db:"start_date"`
	EndDate         time.Time          `json:"end_date" db:"end_date"`
	Location        *string            `json:"location,omitempty" db:"location"`
	Status          TournamentStatus   `json:"status" db:"status"`
	MaxParticipants int                `json:"max_participants" db:"max_participants"`
	ProcessingDate  *time.Time         `json:"processing_date,omitempty" db:"processing_date"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Organizer    *Player            `json:"organizer,omitempty" db:"-"`
	Participants []Participant      `json:"participants,omitempty" db:"-"`
	Results      []TournamentResult `json:"results,omitempty" db:"-"`
}
