package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chessfed/chess-rating-system/live"
	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/repositories"
)

// allowedTransitions encodes the monotonic tournament lifecycle.
// processed and rejected are terminal.
var allowedTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.StatusPending:   {models.StatusApproved, models.StatusRejected},
	models.StatusApproved:  {models.StatusOngoing},
	models.StatusOngoing:   {models.StatusCompleted},
	models.StatusCompleted: {models.StatusProcessed},
}

func transitionAllowed(from, to models.TournamentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CreateTournamentInput struct {
	Name            string                    `json:"name"`
	Description     *string                   `json:"description"`
	Category        models.TournamentCategory `json:"category"`
	StartDate       time.Time                 `json:"start_date"`
	EndDate         time.Time                 `json:"end_date"`
	Location        *string                   `json:"location"`
	MaxParticipants int                       `json:"max_participants"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	ChangeStatus(ctx context.Context, id int, to models.TournamentStatus) (*models.Tournament, error)
	RegisterParticipant(ctx context.Context, tournamentID, playerID int) (*models.Participant, error)
	RecordResults(ctx context.Context, tournamentID int, results []*models.TournamentResult) error
	AutoUpdateTournamentStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	resultRepo      repositories.ResultRepository
	hub             *live.Hub
	logger          *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	resultRepo repositories.ResultRepository,
	hub *live.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		resultRepo:      resultRepo,
		hub:             hub,
		logger:          logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}

	// Unknown categories are stored as classical; the rating run would
	// treat them as classical anyway.
	category := input.Category
	switch category {
	case models.CategoryClassical, models.CategoryRapid, models.CategoryBlitz:
	default:
		category = models.CategoryClassical
	}

	t := &models.Tournament{
		Name:            input.Name,
		Description:     input.Description,
		Category:        category,
		OrganizerID:     organizerID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Location:        input.Location,
		Status:          models.StatusPending,
		MaxParticipants: input.MaxParticipants,
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

// ChangeStatus advances a tournament along its lifecycle. The processed
// state is reserved for report generation and cannot be set here.
func (s *tournamentService) ChangeStatus(ctx context.Context, id int, to models.TournamentStatus) (*models.Tournament, error) {
	if to == models.StatusProcessed {
		return nil, ErrTournamentInvalidStatusTransition
	}

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(t.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, t.Status, to)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, to); err != nil {
		return nil, err
	}
	t.Status = to

	s.broadcastStatus(t)
	return t, nil
}

func (s *tournamentService) RegisterParticipant(ctx context.Context, tournamentID, playerID int) (*models.Participant, error) {
	t, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.StatusApproved {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.participantRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= t.MaxParticipants {
		return nil, ErrTournamentFull
	}

	participant := &models.Participant{TournamentID: tournamentID, PlayerID: playerID}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, err
	}
	return participant, nil
}

// RecordResults stores the per-player outcomes of an ongoing or
// completed tournament. The rating deltas are NOT applied here; that
// is report generation's job.
func (s *tournamentService) RecordResults(ctx context.Context, tournamentID int, results []*models.TournamentResult) error {
	t, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != models.StatusOngoing && t.Status != models.StatusCompleted {
		return fmt.Errorf("%w: results can only be recorded for ongoing or completed tournaments", ErrValidationFailed)
	}

	for _, res := range results {
		res.TournamentID = tournamentID
	}
	if err := s.resultRepo.CreateBatch(ctx, nil, results); err != nil {
		if errors.Is(err, repositories.ErrResultConflict) {
			return ErrResultsAlreadyRecorded
		}
		return fmt.Errorf("failed to record results: %w", err)
	}
	return nil
}

// AutoUpdateTournamentStatusesByDates advances approved tournaments to
// ongoing at their start date and ongoing ones to completed at their
// end date. Run periodically by the cmd scheduler.
func (s *tournamentService) AutoUpdateTournamentStatusesByDates(ctx context.Context) error {
	now := time.Now()
	tournaments, err := s.tournamentRepo.GetTournamentsForAutoStatusUpdate(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load tournaments for status update: %w", err)
	}

	for _, t := range tournaments {
		var next models.TournamentStatus
		switch {
		case t.Status == models.StatusApproved && !t.StartDate.After(now):
			next = models.StatusOngoing
		case t.Status == models.StatusOngoing && !t.EndDate.After(now):
			next = models.StatusCompleted
		default:
			continue
		}

		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, next); err != nil {
			s.logger.Error("failed to auto-update tournament status",
				slog.Int("tournament_id", t.ID),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}
		s.logger.Info("tournament status auto-updated",
			slog.Int("tournament_id", t.ID),
			slog.String("from", string(t.Status)),
			slog.String("to", string(next)))

		t.Status = next
		s.broadcastStatus(t)
	}
	return nil
}

func (s *tournamentService) broadcastStatus(t *models.Tournament) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(live.TournamentRoom(t.ID), live.Event{
		Type:    live.EventTournamentStatusChanged,
		Payload: t,
	})
}
