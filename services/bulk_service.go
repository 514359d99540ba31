package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
	"github.com/chessfed/chess-rating-system/repositories"
)

// BulkSummary describes one administrative batch run.
type BulkSummary struct {
	PlayersAdjusted int       `json:"players_adjusted"`
	RunAt           time.Time `json:"run_at"`
}

type ImportSummary struct {
	PlayersCreated int       `json:"players_created"`
	RunAt          time.Time `json:"run_at"`
}

// BulkService covers the administrative rating-import operations. The
// +100 bonus rule and the tournament report run share the Player shape
// but nothing else; they stay separate on purpose.
type BulkService interface {
	ApplyBonusToAll(ctx context.Context) (*BulkSummary, error)
	ImportRatingsCSV(ctx context.Context, r io.Reader) (*ImportSummary, error)
}

type bulkService struct {
	txRunner   repositories.TxRunner
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewBulkService(txRunner repositories.TxRunner, playerRepo repositories.PlayerRepository, logger *slog.Logger) BulkService {
	return &bulkService{
		txRunner:   txRunner,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ApplyBonusToAll runs the +100 bulk adjustment over every player.
// All three tracks are adjusted independently; all writes commit in a
// single transaction.
func (s *bulkService) ApplyBonusToAll(ctx context.Context) (*BulkSummary, error) {
	players, err := s.playerRepo.List(ctx, repositories.ListPlayersFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	now := time.Now()
	adjusted := 0
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, p := range players {
			next := rating.ApplyBulkBonus(*p, now)
			if err := s.playerRepo.UpdateAllTracks(ctx, exec, &next); err != nil {
				return fmt.Errorf("failed to update player %d: %w", p.ID, err)
			}
			adjusted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk rating adjustment applied", slog.Int("players", adjusted))
	return &BulkSummary{PlayersAdjusted: adjusted, RunAt: now}, nil
}

// RatingImportRow is one line of an administrative ratings snapshot.
type RatingImportRow struct {
	FirstName string
	LastName  string
	Email     string
	Classical int
	Rapid     int
	Blitz     int
}

// ParseRatingsCSV reads a ratings snapshot with a header row of
// first_name,last_name,email and optional classical,rapid,blitz
// columns. Missing rating cells default to the floor.
func ParseRatingsCSV(r io.Reader) ([]RatingImportRow, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("csv must include a header row and at least one data row")
	}

	headers := make(map[string]int, len(records[0]))
	for idx, col := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	for _, col := range []string{"first_name", "last_name", "email"} {
		if _, ok := headers[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	rows := make([]RatingImportRow, 0, len(records)-1)
	for i, record := range records[1:] {
		lineNo := i + 2

		row := RatingImportRow{
			FirstName: readCell(record, headers["first_name"]),
			LastName:  readCell(record, headers["last_name"]),
			Email:     readCell(record, headers["email"]),
			Classical: rating.FloorRating,
			Rapid:     rating.FloorRating,
			Blitz:     rating.FloorRating,
		}
		if row.Email == "" {
			return nil, fmt.Errorf("line %d: email is required", lineNo)
		}

		for col, dst := range map[string]*int{
			"classical": &row.Classical,
			"rapid":     &row.Rapid,
			"blitz":     &row.Blitz,
		} {
			idx, ok := headers[col]
			if !ok {
				continue
			}
			cell := readCell(record, idx)
			if cell == "" {
				continue
			}
			value, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d %s: invalid integer %q", lineNo, col, cell)
			}
			if value < rating.FloorRating {
				return nil, fmt.Errorf("line %d %s: rating %d is below the floor", lineNo, col, value)
			}
			*dst = value
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func readCell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ImportRatingsCSV seeds player accounts from a ratings snapshot.
// Imported tracks carry an "Imported rating" history entry; accounts
// have no password until the player claims them through auth.
func (s *bulkService) ImportRatingsCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, err := ParseRatingsCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	now := time.Now()
	created := 0
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, row := range rows {
			player := models.NewPlayer(row.FirstName, row.LastName, row.Email, "", now)
			player.Classical = importedTrack(row.Classical, now)
			player.Rapid = importedTrack(row.Rapid, now)
			player.Blitz = importedTrack(row.Blitz, now)

			if err := s.playerRepo.Create(ctx, exec, player); err != nil {
				return fmt.Errorf("failed to import player %s: %w", row.Email, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ratings snapshot imported", slog.Int("players", created))
	return &ImportSummary{PlayersCreated: created, RunAt: now}, nil
}

func importedTrack(ratingValue int, now time.Time) models.RatingTrack {
	if ratingValue <= rating.FloorRating {
		return models.NewRatingTrack(now)
	}
	return models.RatingTrack{
		Rating:      ratingValue,
		GamesPlayed: 0,
		Status:      models.RatingProvisional,
		History: []models.RatingHistoryEntry{
			{Date: now.Format("2006-01-02"), Rating: ratingValue, Reason: "Imported rating"},
		},
	}
}
