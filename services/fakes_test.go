package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
	"github.com/chessfed/chess-rating-system/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxRunner struct {
	failWith error
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if f.failWith != nil {
		return f.failWith
	}
	return fn(nil)
}

type fakePlayerRepo struct {
	players       map[int]*models.Player
	updateErr     error
	updatedTracks map[int]rating.Track
}

func newFakePlayerRepo(players ...*models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{
		players:       make(map[int]*models.Player),
		updatedTracks: make(map[int]rating.Track),
	}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (f *fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Player) error {
	for _, existing := range f.players {
		if existing.Email == p.Email {
			return repositories.ErrPlayerEmailConflict
		}
	}
	p.ID = len(f.players) + 1
	p.CreatedAt = time.Now()
	f.players[p.ID] = p
	return nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePlayerRepo) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	for _, p := range f.players {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (f *fakePlayerRepo) GetByIDs(ctx context.Context, ids []int) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.players[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) List(ctx context.Context, filter repositories.ListPlayersFilter) ([]*models.Player, error) {
	out := make([]*models.Player, 0, len(f.players))
	for _, p := range f.players {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakePlayerRepo) UpdateTrack(ctx context.Context, exec repositories.SQLExecutor, playerID int, track rating.Track, tr models.RatingTrack) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	switch track {
	case rating.TrackClassical:
		p.Classical = tr
	case rating.TrackRapid:
		p.Rapid = tr
	case rating.TrackBlitz:
		p.Blitz = tr
	default:
		return rating.ErrInvalidTrack
	}
	f.updatedTracks[playerID] = track
	return nil
}

func (f *fakePlayerRepo) UpdateAllTracks(ctx context.Context, exec repositories.SQLExecutor, p *models.Player) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.players[p.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	stored.Classical = p.Classical
	stored.Rapid = p.Rapid
	stored.Blitz = p.Blitz
	return nil
}

func (f *fakePlayerRepo) UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error {
	p, ok := f.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PhotoKey = photoKey
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	statusErr   error
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = len(f.tournaments) + 1
	t.CreatedAt = time.Now()
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTournamentRepo) MarkProcessed(ctx context.Context, exec repositories.SQLExecutor, id int, processingDate time.Time) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	if t.Status == models.StatusProcessed {
		return repositories.ErrTournamentAlreadyProcessed
	}
	t.Status = models.StatusProcessed
	t.ProcessingDate = &processingDate
	return nil
}

func (f *fakeTournamentRepo) GetTournamentsForAutoStatusUpdate(ctx context.Context, currentTime time.Time) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range f.tournaments {
		if t.Status == models.StatusApproved && !t.StartDate.After(currentTime) {
			out = append(out, t)
		}
		if t.Status == models.StatusOngoing && !t.EndDate.After(currentTime) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeParticipantRepo struct {
	participants []*models.Participant
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	for _, existing := range f.participants {
		if existing.TournamentID == p.TournamentID && existing.PlayerID == p.PlayerID {
			return repositories.ErrParticipantConflict
		}
	}
	p.ID = len(f.participants) + 1
	f.participants = append(f.participants, p)
	return nil
}

func (f *fakeParticipantRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error) {
	out := make([]*models.Participant, 0)
	for _, p := range f.participants {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	list, _ := f.ListByTournament(ctx, tournamentID)
	return len(list), nil
}

type fakeResultRepo struct {
	results []*models.TournamentResult
	listErr error
}

func (f *fakeResultRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, results []*models.TournamentResult) error {
	f.results = append(f.results, results...)
	return nil
}

func (f *fakeResultRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.TournamentResult, 0)
	for _, r := range f.results {
		if r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unreachable")
