package services

import (
	"context"
	"fmt"

	"github.com/chessfed/chess-rating-system/pairing"
	"github.com/chessfed/chess-rating-system/repositories"
)

type PairingService interface {
	// PairingsForTournament generates the round-robin schedule for a
	// tournament; round 0 returns all rounds.
	PairingsForTournament(ctx context.Context, tournamentID, round int) ([]pairing.Pairing, error)
}

type pairingService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	generator       pairing.Generator
}

func NewPairingService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	generator pairing.Generator,
) PairingService {
	return &pairingService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		generator:       generator,
	}
}

func (s *pairingService) PairingsForTournament(ctx context.Context, tournamentID, round int) ([]pairing.Pairing, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, ErrTournamentNotFound
	}

	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	all, err := s.generator.Generate(ctx, pairing.GenerateParams{
		Tournament:   tournament,
		Participants: participants,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if round <= 0 {
		return all, nil
	}
	filtered := make([]pairing.Pairing, 0, len(all))
	for _, p := range all {
		if p.Round == round {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
