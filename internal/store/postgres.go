package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresRepository persists games into coach_games and reports into
// coach_reports.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens and pings databaseURL.
func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveGame upserts a finished game row keyed by game_id.
func (r *PostgresRepository) SaveGame(ctx context.Context, g *GameRecord) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	q := `INSERT INTO coach_games (
	    game_id, mode, difficulty, player_color,
	    result, end_reason, moves_json,
	    accuracy, brilliant_count, mistake_count, blunder_count,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    mode=EXCLUDED.mode,
	    difficulty=EXCLUDED.difficulty,
	    player_color=EXCLUDED.player_color,
	    result=EXCLUDED.result,
	    end_reason=EXCLUDED.end_reason,
	    moves_json=EXCLUDED.moves_json,
	    accuracy=EXCLUDED.accuracy,
	    brilliant_count=EXCLUDED.brilliant_count,
	    mistake_count=EXCLUDED.mistake_count,
	    blunder_count=EXCLUDED.blunder_count,
	    started_at=EXCLUDED.started_at,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		g.ID, g.Mode, g.Difficulty, g.PlayerColor,
		g.Result, g.EndReason, string(g.Moves),
		g.Accuracy, g.Brilliant, g.Mistakes, g.Blunders,
		g.StartedAt, g.EndedAt, g.DurationMS,
	)
	return err
}

// SaveReport upserts the JSON coaching report for a game.
func (r *PostgresRepository) SaveReport(ctx context.Context, gameID string, stats []byte) error {
	if r == nil || r.db == nil {
		return nil
	}
	q := `INSERT INTO coach_reports (game_id, stats_json, created_at)
	  VALUES ($1,$2,$3)
	  ON CONFLICT (game_id) DO UPDATE SET
	    stats_json=EXCLUDED.stats_json,
	    created_at=EXCLUDED.created_at`
	_, err := r.db.ExecContext(ctx, q, gameID, string(stats), time.Now())
	return err
}

func (r *PostgresRepository) GetGame(ctx context.Context, id string) (*GameRecord, error) {
	if r == nil || r.db == nil {
		return nil, ErrNotFound
	}
	q := `SELECT game_id, mode, difficulty, player_color, result, end_reason,
	    moves_json, accuracy, brilliant_count, mistake_count, blunder_count,
	    started_at, ended_at, duration_ms
	  FROM coach_games WHERE game_id = $1`
	return scanGame(r.db.QueryRowContext(ctx, q, id))
}

func (r *PostgresRepository) ListGames(ctx context.Context, limit int) ([]*GameRecord, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := `SELECT game_id, mode, difficulty, player_color, result, end_reason,
	    moves_json, accuracy, brilliant_count, mistake_count, blunder_count,
	    started_at, ended_at, duration_ms
	  FROM coach_games ORDER BY ended_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetReport(ctx context.Context, gameID string) ([]byte, error) {
	if r == nil || r.db == nil {
		return nil, ErrNotFound
	}
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT stats_json FROM coach_reports WHERE game_id = $1`, gameID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*GameRecord, error) {
	var g GameRecord
	var moves string
	err := row.Scan(&g.ID, &g.Mode, &g.Difficulty, &g.PlayerColor,
		&g.Result, &g.EndReason, &moves,
		&g.Accuracy, &g.Brilliant, &g.Mistakes, &g.Blunders,
		&g.StartedAt, &g.EndedAt, &g.DurationMS)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Moves = []byte(moves)
	return &g, nil
}

// Schema is the DDL for the tables this repository uses, applied by
// operators out of band.
const Schema = `
CREATE TABLE IF NOT EXISTS coach_games (
    game_id       TEXT PRIMARY KEY,
    mode          TEXT NOT NULL,
    difficulty    TEXT NOT NULL,
    player_color  TEXT NOT NULL,
    result        TEXT NOT NULL,
    end_reason    TEXT NOT NULL,
    moves_json    TEXT NOT NULL DEFAULT '[]',
    accuracy      DOUBLE PRECISION NOT NULL DEFAULT 0,
    brilliant_count INTEGER NOT NULL DEFAULT 0,
    mistake_count   INTEGER NOT NULL DEFAULT 0,
    blunder_count   INTEGER NOT NULL DEFAULT 0,
    started_at    TIMESTAMPTZ NOT NULL,
    ended_at      TIMESTAMPTZ NOT NULL,
    duration_ms   BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS coach_reports (
    game_id     TEXT PRIMARY KEY REFERENCES coach_games(game_id),
    stats_json  TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);
`
