package models

import "time"

// Roles, соответствующие ENUM в БД.
const (
	RolePlayer    = "player"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// RatingStatus of a single rating track.
type RatingStatus string

const (
	RatingProvisional RatingStatus = "provisional"
	RatingEstablished RatingStatus = "established"
)

// RatingHistoryEntry is one line of a track's rating log.
// Entries are append-only; insertion order is chronological order.
type RatingHistoryEntry struct {
	Date   string `json:"date"` // calendar date, YYYY-MM-DD
	Rating int    `json:"rating"`
	Reason string `json:"reason"`
}

// RatingTrack holds one of the three independent rating dimensions
// (classical, rapid, blitz) of a player.
type RatingTrack struct {
	Rating      int                  `json:"rating"`
	GamesPlayed int                  `json:"games_played"`
	Status      RatingStatus         `json:"status"`
	History     []RatingHistoryEntry `json:"history"`
}

type Player struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Classical RatingTrack `json:"classical"`
	Rapid     RatingTrack `json:"rapid"`
	Blitz     RatingTrack `json:"blitz"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// InitialRating is the floor every new track starts at.
const InitialRating = 800

// NewRatingTrack returns a track at the floor rating with a single
// "Initial rating" history entry dated at creation.
func NewRatingTrack(createdAt time.Time) RatingTrack {
	return RatingTrack{
		Rating:      InitialRating,
		GamesPlayed: 0,
		Status:      RatingProvisional,
		History: []RatingHistoryEntry{
			{
				Date:   createdAt.Format("2006-01-02"),
				Rating: InitialRating,
				Reason: "Initial rating",
			},
		},
	}
}

// NewPlayer creates a player with all three tracks at the floor.
func NewPlayer(firstName, lastName, email, passwordHash string, createdAt time.Time) *Player {
	return &Player{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RolePlayer,
		Classical:    NewRatingTrack(createdAt),
		Rapid:        NewRatingTrack(createdAt),
		Blitz:        NewRatingTrack(createdAt),
	}
}
