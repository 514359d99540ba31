package rating

import (
	"testing"

	"github.com/chessfed/chess-rating-system/models"
)

func TestApplyBulkBonus(t *testing.T) {
	cases := []struct {
		name      string
		rating    int
		games     int
		wantRate  int
		wantGames int
	}{
		{"established rating gets bonus", 2100, 30, 2200, 30},
		{"floor track untouched", 800, 0, 800, 0},
		{"barely above floor", 801, 5, 901, 30},
		{"floor with games is reset", 800, 12, 800, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer()
			p.Classical.Rating = tc.rating
			p.Classical.GamesPlayed = tc.games

			got := ApplyBulkBonus(p, testDate).Classical
			if got.Rating != tc.wantRate || got.GamesPlayed != tc.wantGames {
				t.Errorf("got {%d, %d}, want {%d, %d}",
					got.Rating, got.GamesPlayed, tc.wantRate, tc.wantGames)
			}
		})
	}
}

func TestApplyBulkBonusAdjustsAllTracksIndependently(t *testing.T) {
	p := testPlayer()
	p.Classical.Rating = 1500
	p.Classical.GamesPlayed = 40
	p.Rapid.Rating = 801
	p.Rapid.GamesPlayed = 3
	// Blitz stays at the floor.

	got := ApplyBulkBonus(p, testDate)
	if got.Classical.Rating != 1600 || got.Classical.GamesPlayed != 40 {
		t.Errorf("classical = {%d, %d}, want {1600, 40}", got.Classical.Rating, got.Classical.GamesPlayed)
	}
	if got.Rapid.Rating != 901 || got.Rapid.GamesPlayed != 30 {
		t.Errorf("rapid = {%d, %d}, want {901, 30}", got.Rapid.Rating, got.Rapid.GamesPlayed)
	}
	if got.Blitz.Rating != FloorRating || got.Blitz.GamesPlayed != 0 {
		t.Errorf("blitz = {%d, %d}, want {800, 0}", got.Blitz.Rating, got.Blitz.GamesPlayed)
	}
}

func TestApplyBulkBonusWritesHistoryAndStatus(t *testing.T) {
	p := testPlayer()
	p.Rapid.Rating = 1200
	p.Rapid.GamesPlayed = 4
	historyLen := len(p.Rapid.History)

	got := ApplyBulkBonus(p, testDate)
	if got.Rapid.Status != models.RatingEstablished {
		t.Errorf("rapid status = %s, want established (games raised to 30)", got.Rapid.Status)
	}
	if len(got.Rapid.History) != historyLen+1 {
		t.Fatalf("history length = %d, want %d", len(got.Rapid.History), historyLen+1)
	}
	last := got.Rapid.History[len(got.Rapid.History)-1]
	if last.Reason != BulkAdjustReason || last.Rating != 1300 {
		t.Errorf("appended entry = %+v", last)
	}
	// Floor tracks get no history entry.
	if len(got.Blitz.History) != len(p.Blitz.History) {
		t.Error("floor track history changed")
	}
}
