package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
)

func TestApplyBonusToAll(t *testing.T) {
	established := ratedPlayer(1)
	established.Classical = trackWith(2100, 30)
	fresh := ratedPlayer(2)

	repo := newFakePlayerRepo(established, fresh)
	service := NewBulkService(&fakeTxRunner{}, repo, testLogger())

	summary, err := service.ApplyBonusToAll(context.Background())
	if err != nil {
		t.Fatalf("ApplyBonusToAll: %v", err)
	}
	if summary.PlayersAdjusted != 2 {
		t.Errorf("players adjusted = %d, want 2", summary.PlayersAdjusted)
	}

	got := repo.players[1].Classical
	if got.Rating != 2200 || got.GamesPlayed != 30 {
		t.Errorf("established classical = {%d, %d}, want {2200, 30}", got.Rating, got.GamesPlayed)
	}

	floor := repo.players[2].Classical
	if floor.Rating != rating.FloorRating || floor.GamesPlayed != 0 {
		t.Errorf("floor classical = {%d, %d}, want {800, 0}", floor.Rating, floor.GamesPlayed)
	}
}

func TestApplyBonusToAllRollsBackOnFailure(t *testing.T) {
	p := ratedPlayer(1)
	p.Classical = trackWith(1500, 40)

	repo := newFakePlayerRepo(p)
	service := NewBulkService(&fakeTxRunner{failWith: errStoreDown}, repo, testLogger())

	if _, err := service.ApplyBonusToAll(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want store failure", err)
	}
	if repo.players[1].Classical.Rating != 1500 {
		t.Error("player modified despite failed transaction")
	}
}

func TestParseRatingsCSV(t *testing.T) {
	csvData := "first_name,last_name,email,classical,rapid,blitz\n" +
		"Dana,Omarova,dana@example.com,1850,1700,\n" +
		"Timur,Bekov,timur@example.com,,,\n"

	rows, err := ParseRatingsCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseRatingsCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Classical != 1850 || first.Rapid != 1700 || first.Blitz != rating.FloorRating {
		t.Errorf("first row ratings = {%d, %d, %d}", first.Classical, first.Rapid, first.Blitz)
	}
	second := rows[1]
	if second.Classical != rating.FloorRating {
		t.Errorf("empty rating cell should default to the floor, got %d", second.Classical)
	}
}

func TestParseRatingsCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing email column", "first_name,last_name\nDana,Omarova\n"},
		{"header only", "first_name,last_name,email\n"},
		{"bad rating", "first_name,last_name,email,classical\nD,O,d@e.com,strong\n"},
		{"below floor", "first_name,last_name,email,classical\nD,O,d@e.com,500\n"},
		{"empty email", "first_name,last_name,email\nD,O,\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseRatingsCSV(strings.NewReader(tc.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestImportRatingsCSV(t *testing.T) {
	repo := newFakePlayerRepo()
	service := NewBulkService(&fakeTxRunner{}, repo, testLogger())

	csvData := "first_name,last_name,email,classical\n" +
		"Dana,Omarova,dana@example.com,1850\n"

	summary, err := service.ImportRatingsCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportRatingsCSV: %v", err)
	}
	if summary.PlayersCreated != 1 {
		t.Fatalf("players created = %d, want 1", summary.PlayersCreated)
	}

	var imported *models.Player
	for _, p := range repo.players {
		imported = p
	}
	if imported == nil {
		t.Fatal("player not stored")
	}
	if imported.Classical.Rating != 1850 {
		t.Errorf("classical rating = %d, want 1850", imported.Classical.Rating)
	}
	if imported.Rapid.Rating != rating.FloorRating {
		t.Errorf("rapid rating = %d, want floor", imported.Rapid.Rating)
	}
	if len(imported.Classical.History) != 1 || imported.Classical.History[0].Reason != "Imported rating" {
		t.Errorf("classical history = %+v", imported.Classical.History)
	}
}

func TestImportRatingsCSVRejectsInvalidPayload(t *testing.T) {
	service := NewBulkService(&fakeTxRunner{}, newFakePlayerRepo(), testLogger())

	_, err := service.ImportRatingsCSV(context.Background(), strings.NewReader("rank\n1\n"))
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}
