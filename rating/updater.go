package rating

import (
	"time"

	"github.com/chessfed/chess-rating-system/models"
)

// ApplyDelta applies a single rating delta to one player's one track
// and returns the updated player value. The selected track gets a new
// rating (clamped to the floor), one more game played, a recomputed
// status and one appended history entry; the other two tracks are left
// untouched. The input player is not mutated.
//
// Applying the same delta twice is not idempotent: it appends two
// history entries and counts two games. Callers own run-once
// semantics.
func ApplyDelta(p models.Player, track Track, delta int, reason string, date time.Time) (models.Player, error) {
	tr, err := trackOf(&p, track)
	if err != nil {
		return models.Player{}, err
	}

	newRating := ClampToFloor(tr.Rating + delta)
	newGames := IncrementGames(tr.GamesPlayed)

	// Clone the history so the caller's slice is never aliased.
	history := make([]models.RatingHistoryEntry, len(tr.History), len(tr.History)+1)
	copy(history, tr.History)
	history = append(history, models.RatingHistoryEntry{
		Date:   date.Format("2006-01-02"),
		Rating: newRating,
		Reason: reason,
	})

	*tr = models.RatingTrack{
		Rating:      newRating,
		GamesPlayed: newGames,
		Status:      NextStatus(tr.Status, newGames),
		History:     history,
	}
	return p, nil
}
