package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
	"github.com/chessfed/chess-rating-system/repositories"
	"github.com/chessfed/chess-rating-system/storage"
)

type PlayerService interface {
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, filter repositories.ListPlayersFilter) ([]*models.Player, error)
	RatingHistory(ctx context.Context, playerID int, track string) ([]models.RatingHistoryEntry, error)
	UploadPhoto(ctx context.Context, playerID int, contentType string, photo io.Reader) (string, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.fillPhotoURL(player)
	return player, nil
}

func (s *playerService) List(ctx context.Context, filter repositories.ListPlayersFilter) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, p := range players {
		s.fillPhotoURL(p)
	}
	return players, nil
}

// RatingHistory returns the append-only history log of one track.
func (s *playerService) RatingHistory(ctx context.Context, playerID int, track string) ([]models.RatingHistoryEntry, error) {
	parsed, err := rating.ParseTrack(track)
	if err != nil {
		return nil, err
	}

	player, err := s.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	state, err := rating.TrackState(*player, parsed)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}

func (s *playerService) UploadPhoto(ctx context.Context, playerID int, contentType string, photo io.Reader) (string, error) {
	if _, err := s.GetByID(ctx, playerID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("players/%d/photo", playerID)
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return "", fmt.Errorf("failed to upload player photo: %w", err)
	}

	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, &result.Key); err != nil {
		return "", err
	}
	return result.Location, nil
}

func (s *playerService) fillPhotoURL(p *models.Player) {
	if p.PhotoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*p.PhotoKey)
		p.PhotoURL = &url
	}
}
