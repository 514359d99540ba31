package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chessfed/chess-rating-system/models"
)

func newTournamentFixture(tournaments ...*models.Tournament) (TournamentService, *fakeTournamentRepo) {
	repo := newFakeTournamentRepo(tournaments...)
	service := NewTournamentService(repo, &fakeParticipantRepo{}, &fakeResultRepo{}, nil, testLogger())
	return service, repo
}

func TestChangeStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    models.TournamentStatus
		to      models.TournamentStatus
		wantErr bool
	}{
		{"pending to approved", models.StatusPending, models.StatusApproved, false},
		{"pending to rejected", models.StatusPending, models.StatusRejected, false},
		{"approved to ongoing", models.StatusApproved, models.StatusOngoing, false},
		{"ongoing to completed", models.StatusOngoing, models.StatusCompleted, false},
		{"pending to ongoing skips approval", models.StatusPending, models.StatusOngoing, true},
		{"approved to rejected", models.StatusApproved, models.StatusRejected, true},
		{"completed back to ongoing", models.StatusCompleted, models.StatusOngoing, true},
		{"processed is terminal", models.StatusProcessed, models.StatusCompleted, true},
		{"rejected is terminal", models.StatusRejected, models.StatusApproved, true},
		{"processed unreachable via ChangeStatus", models.StatusCompleted, models.StatusProcessed, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTournamentFixture(&models.Tournament{ID: 1, Name: "T", Status: tc.from})

			_, err := service.ChangeStatus(context.Background(), 1, tc.to)
			if tc.wantErr {
				if !errors.Is(err, ErrTournamentInvalidStatusTransition) {
					t.Errorf("err = %v, want ErrTournamentInvalidStatusTransition", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	service, _ := newTournamentFixture()
	start := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{
			"missing name",
			CreateTournamentInput{StartDate: start, EndDate: start.Add(time.Hour), MaxParticipants: 8},
			ErrTournamentNameRequired,
		},
		{
			"end before start",
			CreateTournamentInput{Name: "T", StartDate: start, EndDate: start.Add(-time.Hour), MaxParticipants: 8},
			ErrTournamentInvalidDateRange,
		},
		{
			"zero capacity",
			CreateTournamentInput{Name: "T", StartDate: start, EndDate: start.Add(time.Hour)},
			ErrTournamentInvalidCapacity,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), 1, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateTournamentNormalizesCategory(t *testing.T) {
	service, repo := newTournamentFixture()
	start := time.Now().Add(24 * time.Hour)

	created, err := service.Create(context.Background(), 1, CreateTournamentInput{
		Name:            "Correspondence Cup",
		Category:        "correspondence",
		StartDate:       start,
		EndDate:         start.Add(time.Hour),
		MaxParticipants: 8,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Category != models.CategoryClassical {
		t.Errorf("category = %s, want classical", created.Category)
	}
	if created.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}
	if repo.tournaments[created.ID] == nil {
		t.Error("tournament not stored")
	}
}

func TestAutoUpdateTournamentStatusesByDates(t *testing.T) {
	now := time.Now()
	started := &models.Tournament{
		ID: 1, Name: "Started", Status: models.StatusApproved,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour),
	}
	finished := &models.Tournament{
		ID: 2, Name: "Finished", Status: models.StatusOngoing,
		StartDate: now.Add(-3 * time.Hour), EndDate: now.Add(-time.Hour),
	}
	future := &models.Tournament{
		ID: 3, Name: "Future", Status: models.StatusApproved,
		StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour),
	}

	service, repo := newTournamentFixture(started, finished, future)
	if err := service.AutoUpdateTournamentStatusesByDates(context.Background()); err != nil {
		t.Fatalf("AutoUpdateTournamentStatusesByDates: %v", err)
	}

	if got := repo.tournaments[1].Status; got != models.StatusOngoing {
		t.Errorf("started tournament status = %s, want ongoing", got)
	}
	if got := repo.tournaments[2].Status; got != models.StatusCompleted {
		t.Errorf("finished tournament status = %s, want completed", got)
	}
	if got := repo.tournaments[3].Status; got != models.StatusApproved {
		t.Errorf("future tournament status = %s, want approved", got)
	}
}
