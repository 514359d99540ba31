package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chessfed/chess-rating-system/live"
	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
	"github.com/chessfed/chess-rating-system/repositories"
	"golang.org/x/sync/errgroup"
)

// computeConcurrency bounds the fan-out of the pure per-player
// computation phase. Updates are independent and commute, so the
// bound is a throughput knob, not a correctness one.
const computeConcurrency = 8

// ReportSummary describes one finished report generation run.
type ReportSummary struct {
	TournamentID   int          `json:"tournament_id"`
	TournamentName string       `json:"tournament_name"`
	Track          rating.Track `json:"track"`
	PlayersRated   int          `json:"players_rated"`
	PlayersSkipped int          `json:"players_skipped"`
	ProcessingDate time.Time    `json:"processing_date"`
}

// ReportService turns a completed tournament's results into permanent
// rating changes, exactly once per tournament.
type ReportService interface {
	// GenerateReport rates every participant with a recorded result
	// using the canonical head-to-head delta source.
	GenerateReport(ctx context.Context, tournamentID int) (*ReportSummary, error)

	// GenerateReportPrecomputed is the legacy entry point for result
	// sets imported with the delta already computed upstream.
	GenerateReportPrecomputed(ctx context.Context, tournamentID int) (*ReportSummary, error)
}

type reportService struct {
	txRunner        repositories.TxRunner
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	resultRepo      repositories.ResultRepository
	playerRepo      repositories.PlayerRepository
	hub             *live.Hub
	logger          *slog.Logger
}

func NewReportService(
	txRunner repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	resultRepo repositories.ResultRepository,
	playerRepo repositories.PlayerRepository,
	hub *live.Hub,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		txRunner:        txRunner,
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		resultRepo:      resultRepo,
		playerRepo:      playerRepo,
		hub:             hub,
		logger:          logger,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, tournamentID int) (*ReportSummary, error) {
	return s.generate(ctx, tournamentID, rating.HeadToHeadDelta{})
}

func (s *reportService) GenerateReportPrecomputed(ctx context.Context, tournamentID int) (*ReportSummary, error) {
	return s.generate(ctx, tournamentID, rating.PrecomputedDelta{})
}

func (s *reportService) generate(ctx context.Context, tournamentID int, deltas rating.DeltaSource) (*ReportSummary, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status == models.StatusProcessed {
		return nil, ErrTournamentAlreadyProcessed
	}
	if tournament.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrTournamentNotCompleted, tournament.Status)
	}

	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	results, err := s.resultRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	resultByPlayer := make(map[int]*models.TournamentResult, len(results))
	for _, res := range results {
		if _, seen := resultByPlayer[res.PlayerID]; !seen {
			resultByPlayer[res.PlayerID] = res
		}
	}

	playerIDs := make([]int, 0, len(participants))
	for _, p := range participants {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	// Deltas are computed against the roster's pre-run state, so the
	// per-player updates are order-independent.
	roster := make(rating.Roster, len(players))
	for _, p := range players {
		roster[p.ID] = *p
	}

	track := rating.TrackForCategory(tournament.Category)
	reason := fmt.Sprintf("Tournament: %s", tournament.Name)
	now := time.Now()

	// Pure computation phase, fanned out. Each slot of updated is
	// written by exactly one goroutine.
	updated := make([]*models.Player, len(participants))
	skipped := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(computeConcurrency)

	for i, participant := range participants {
		player, ok := roster[participant.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: participant %d", ErrPlayerNotFound, participant.PlayerID)
		}
		result, ok := resultByPlayer[participant.PlayerID]
		if !ok {
			// Registered but no recorded outcome: not rated, not an error.
			skipped++
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			delta, err := deltas.Delta(player, track, *result, roster)
			if err != nil {
				return err
			}
			next, err := rating.ApplyDelta(player, track, delta, reason, now)
			if err != nil {
				return err
			}
			updated[i] = &next
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report computation failed: %w", err)
	}

	// Persistence barrier: every player write and the processed flip
	// commit together or not at all. A failed run leaves no partial
	// state behind, so a retry cannot double-count.
	rated := 0
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, p := range updated {
			if p == nil {
				continue
			}
			state, err := rating.TrackState(*p, track)
			if err != nil {
				return err
			}
			if err := s.playerRepo.UpdateTrack(ctx, exec, p.ID, track, state); err != nil {
				return fmt.Errorf("failed to update player %d: %w", p.ID, err)
			}
			rated++
		}
		if err := s.tournamentRepo.MarkProcessed(ctx, exec, tournamentID, now); err != nil {
			if errors.Is(err, repositories.ErrTournamentAlreadyProcessed) {
				return ErrTournamentAlreadyProcessed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		TournamentID:   tournamentID,
		TournamentName: tournament.Name,
		Track:          track,
		PlayersRated:   rated,
		PlayersSkipped: skipped,
		ProcessingDate: now,
	}

	s.logger.Info("tournament report processed",
		slog.Int("tournament_id", tournamentID),
		slog.String("track", string(track)),
		slog.Int("players_rated", rated),
		slog.Int("players_skipped", skipped))

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.TournamentRoom(tournamentID), live.Event{
			Type:    live.EventReportProcessed,
			Payload: summary,
		})
	}
	return summary, nil
}
