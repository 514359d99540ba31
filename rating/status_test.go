package rating

import (
	"testing"

	"github.com/chessfed/chess-rating-system/models"
)

func TestNextStatusBoundary(t *testing.T) {
	if got := NextStatus(models.RatingProvisional, 29); got != models.RatingProvisional {
		t.Errorf("NextStatus(provisional, 29) = %s, want provisional", got)
	}
	if got := NextStatus(models.RatingProvisional, 30); got != models.RatingEstablished {
		t.Errorf("NextStatus(provisional, 30) = %s, want established", got)
	}
}

func TestNextStatusSticky(t *testing.T) {
	// Once established, never back to provisional.
	for _, games := range []int{0, 1, 29, 30, 500} {
		if got := NextStatus(models.RatingEstablished, games); got != models.RatingEstablished {
			t.Errorf("NextStatus(established, %d) = %s, want established", games, got)
		}
	}
}

func TestIsEstablished(t *testing.T) {
	cases := []struct {
		games int
		want  bool
	}{
		{0, false},
		{29, false},
		{30, true},
		{100, true},
	}
	for _, tc := range cases {
		if got := IsEstablished(tc.games); got != tc.want {
			t.Errorf("IsEstablished(%d) = %v, want %v", tc.games, got, tc.want)
		}
	}
}

func TestIncrementGames(t *testing.T) {
	if got := IncrementGames(9); got != 10 {
		t.Errorf("IncrementGames(9) = %d, want 10", got)
	}
}
