package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/rating"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerEmailConflict = errors.New("email address is already in use")
)

type ListPlayersFilter struct {
	Role   *string
	Limit  int
	Offset int
}

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)
	GetByIDs(ctx context.Context, ids []int) ([]*models.Player, error)
	List(ctx context.Context, filter ListPlayersFilter) ([]*models.Player, error)
	UpdateTrack(ctx context.Context, exec SQLExecutor, playerID int, track rating.Track, tr models.RatingTrack) error
	UpdateAllTracks(ctx context.Context, exec SQLExecutor, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// trackColumns whitelists the per-track column names. Track names must
// never be interpolated into SQL from request input directly.
var trackColumns = map[rating.Track]struct {
	rating, games, status, history string
}{
	rating.TrackClassical: {"classical_rating", "classical_games", "classical_status", "classical_history"},
	rating.TrackRapid:     {"rapid_rating", "rapid_games", "rapid_status", "rapid_history"},
	rating.TrackBlitz:     {"blitz_rating", "blitz_games", "blitz_status", "blitz_history"},
}

const playerColumns = `
	id, first_name, last_name, email, password_hash, role, created_at, photo_key,
	classical_rating, classical_games, classical_status, classical_history,
	rapid_rating, rapid_games, rapid_status, rapid_history,
	blitz_rating, blitz_games, blitz_status, blitz_history`

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (
			first_name, last_name, email, password_hash, role,
			classical_rating, classical_games, classical_status, classical_history,
			rapid_rating, rapid_games, rapid_status, rapid_history,
			blitz_rating, blitz_games, blitz_status, blitz_history
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	ch, err := marshalHistory(p.Classical.History)
	if err != nil {
		return err
	}
	rh, err := marshalHistory(p.Rapid.History)
	if err != nil {
		return err
	}
	bh, err := marshalHistory(p.Blitz.History)
	if err != nil {
		return err
	}

	err = executor.QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Email, p.PasswordHash, p.Role,
		p.Classical.Rating, p.Classical.GamesPlayed, p.Classical.Status, ch,
		p.Rapid.Rating, p.Rapid.GamesPlayed, p.Rapid.Status, rh,
		p.Blitz.Rating, p.Blitz.GamesPlayed, p.Blitz.Status, bh,
	).Scan(&p.ID, &p.CreatedAt)

	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE email = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresPlayerRepository) GetByIDs(ctx context.Context, ids []int) ([]*models.Player, error) {
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}
	query := `SELECT` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanPlayers(rows)
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argID)
		args = append(args, *filter.Role)
		argID++
	}

	query += " ORDER BY last_name, first_name, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanPlayers(rows)
}

func (r *postgresPlayerRepository) UpdateTrack(ctx context.Context, exec SQLExecutor, playerID int, track rating.Track, tr models.RatingTrack) error {
	executor := r.getExecutor(exec)

	cols, ok := trackColumns[track]
	if !ok {
		return fmt.Errorf("%w: %q", rating.ErrInvalidTrack, track)
	}

	history, err := marshalHistory(tr.History)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE players SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE id = $5`,
		cols.rating, cols.games, cols.status, cols.history,
	)
	result, err := executor.ExecContext(ctx, query, tr.Rating, tr.GamesPlayed, tr.Status, history, playerID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateAllTracks(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	executor := r.getExecutor(exec)

	ch, err := marshalHistory(p.Classical.History)
	if err != nil {
		return err
	}
	rh, err := marshalHistory(p.Rapid.History)
	if err != nil {
		return err
	}
	bh, err := marshalHistory(p.Blitz.History)
	if err != nil {
		return err
	}

	query := `
		UPDATE players SET
			classical_rating = $1, classical_games = $2, classical_status = $3, classical_history = $4,
			rapid_rating = $5, rapid_games = $6, rapid_status = $7, rapid_history = $8,
			blitz_rating = $9, blitz_games = $10, blitz_status = $11, blitz_history = $12
		WHERE id = $13`

	result, err := executor.ExecContext(ctx, query,
		p.Classical.Rating, p.Classical.GamesPlayed, p.Classical.Status, ch,
		p.Rapid.Rating, p.Rapid.GamesPlayed, p.Rapid.Status, rh,
		p.Blitz.Rating, p.Blitz.GamesPlayed, p.Blitz.Status, bh,
		p.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player photo key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresPlayerRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	p := &models.Player{}
	var ch, rh, bh []byte

	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.PasswordHash, &p.Role, &p.CreatedAt, &p.PhotoKey,
		&p.Classical.Rating, &p.Classical.GamesPlayed, &p.Classical.Status, &ch,
		&p.Rapid.Rating, &p.Rapid.GamesPlayed, &p.Rapid.Status, &rh,
		&p.Blitz.Rating, &p.Blitz.GamesPlayed, &p.Blitz.Status, &bh,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if p.Classical.History, err = unmarshalHistory(ch); err != nil {
		return nil, err
	}
	if p.Rapid.History, err = unmarshalHistory(rh); err != nil {
		return nil, err
	}
	if p.Blitz.History, err = unmarshalHistory(bh); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) scanPlayers(rows *sql.Rows) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for rows.Next() {
		p, err := r.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func marshalHistory(history []models.RatingHistoryEntry) ([]byte, error) {
	if history == nil {
		history = []models.RatingHistoryEntry{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rating history: %w", err)
	}
	return data, nil
}

func unmarshalHistory(data []byte) ([]models.RatingHistoryEntry, error) {
	if len(data) == 0 {
		return []models.RatingHistoryEntry{}, nil
	}
	var history []models.RatingHistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rating history: %w", err)
	}
	return history, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "players_email_key" {
			return ErrPlayerEmailConflict
		}
	}
	return err
}
