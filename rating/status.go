package rating

import "github.com/chessfed/chess-rating-system/models"

// IsEstablished reports whether a games-played count qualifies a track
// for established status.
func IsEstablished(gamesPlayed int) bool {
	return gamesPlayed >= EstablishedGames
}

// NextStatus is sticky: an established track never regresses to
// provisional, even if an administrative correction later lowers the
// games count.
func NextStatus(current models.RatingStatus, gamesPlayed int) models.RatingStatus {
	if current == models.RatingEstablished {
		return models.RatingEstablished
	}
	if IsEstablished(gamesPlayed) {
		return models.RatingEstablished
	}
	return models.RatingProvisional
}

// IncrementGames counts one tournament participation. A tournament is
// a single rated event per player, not one event per game.
func IncrementGames(gamesPlayed int) int {
	return gamesPlayed + 1
}
