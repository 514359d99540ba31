package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/lib/pq"
)

var ErrResultConflict = errors.New("result already recorded for this player in this tournament")

type ResultRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, results []*models.TournamentResult) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) CreateBatch(ctx context.Context, exec SQLExecutor, results []*models.TournamentResult) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_results (tournament_id, player_id, opponent_id, result, rating_change, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	for _, res := range results {
		err := executor.QueryRowContext(ctx, query,
			res.TournamentID, res.PlayerID, res.OpponentID, res.Result, res.RatingChange, res.Position,
		).Scan(&res.ID, &res.CreatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fmt.Errorf("%w: player %d", ErrResultConflict, res.PlayerID)
			}
			return err
		}
	}
	return nil
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error) {
	query := `
		SELECT id, tournament_id, player_id, opponent_id, result, rating_change, position, created_at
		FROM tournament_results
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*models.TournamentResult, 0)
	for rows.Next() {
		var res models.TournamentResult
		if scanErr := rows.Scan(
			&res.ID, &res.TournamentID, &res.PlayerID, &res.OpponentID,
			&res.Result, &res.RatingChange, &res.Position, &res.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		results = append(results, &res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
