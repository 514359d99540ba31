package rating

import (
	"fmt"

	"github.com/chessfed/chess-rating-system/models"
)

// Track is one of the three independent rating dimensions of a player.
type Track string

const (
	TrackClassical Track = "classical"
	TrackRapid     Track = "rapid"
	TrackBlitz     Track = "blitz"
)

// ParseTrack is strict: anything other than the three known track
// names is an error.
func ParseTrack(s string) (Track, error) {
	switch Track(s) {
	case TrackClassical, TrackRapid, TrackBlitz:
		return Track(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTrack, s)
	}
}

// TrackForCategory maps a tournament category to the track it is rated
// on. An absent or unrecognized category means classical.
func TrackForCategory(c models.TournamentCategory) Track {
	switch c {
	case models.CategoryRapid:
		return TrackRapid
	case models.CategoryBlitz:
		return TrackBlitz
	default:
		return TrackClassical
	}
}

// trackOf returns a pointer to the player's track struct.
func trackOf(p *models.Player, t Track) (*models.RatingTrack, error) {
	switch t {
	case TrackClassical:
		return &p.Classical, nil
	case TrackRapid:
		return &p.Rapid, nil
	case TrackBlitz:
		return &p.Blitz, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTrack, t)
	}
}

// TrackState returns a copy of the player's track.
func TrackState(p models.Player, t Track) (models.RatingTrack, error) {
	tr, err := trackOf(&p, t)
	if err != nil {
		return models.RatingTrack{}, err
	}
	return *tr, nil
}
