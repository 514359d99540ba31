package rating

import (
	"time"

	"github.com/chessfed/chess-rating-system/models"
)

const (
	bulkBonus = 100

	// A track qualifies for the bulk bonus when its rating is strictly
	// above the floor. This is unrelated to the 30-games established
	// status; see the glossary.
	bulkBonusMinRating = FloorRating + 1
)

// BulkAdjustReason is the history reason recorded by the bulk import rule.
const BulkAdjustReason = "Bulk rating adjustment"

// ApplyBulkBonus applies the administrative import rule to all three
// tracks of a player: tracks rated above the floor gain a flat +100
// and are treated as established (games raised to at least 30); tracks
// at the floor are reset to 800 rating and zero games.
func ApplyBulkBonus(p models.Player, date time.Time) models.Player {
	p.Classical = bulkAdjustTrack(p.Classical, date)
	p.Rapid = bulkAdjustTrack(p.Rapid, date)
	p.Blitz = bulkAdjustTrack(p.Blitz, date)
	return p
}

func bulkAdjustTrack(tr models.RatingTrack, date time.Time) models.RatingTrack {
	if tr.Rating < bulkBonusMinRating {
		return models.RatingTrack{
			Rating:      FloorRating,
			GamesPlayed: 0,
			Status:      NextStatus(tr.Status, 0),
			History:     tr.History,
		}
	}

	newRating := tr.Rating + bulkBonus
	games := tr.GamesPlayed
	if games < EstablishedGames {
		games = EstablishedGames
	}

	history := make([]models.RatingHistoryEntry, len(tr.History), len(tr.History)+1)
	copy(history, tr.History)
	history = append(history, models.RatingHistoryEntry{
		Date:   date.Format("2006-01-02"),
		Rating: newRating,
		Reason: BulkAdjustReason,
	})

	return models.RatingTrack{
		Rating:      newRating,
		GamesPlayed: games,
		Status:      NextStatus(tr.Status, games),
		History:     history,
	}
}
