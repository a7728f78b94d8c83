package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a game or report does not exist.
var ErrNotFound = errors.New("store: not found")

// GameRecord is a finished session as persisted. Moves holds the JSON-encoded
// move history; Stats on the report side holds the JSON-encoded SessionStats.
// The store deals in encoded bytes so it stays decoupled from the engine types.
type GameRecord struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	Difficulty  string    `json:"difficulty"`
	PlayerColor string    `json:"player_color"`
	Result      string    `json:"result"`
	EndReason   string    `json:"end_reason"`
	Moves       []byte    `json:"moves"`
	Accuracy    float64   `json:"accuracy"`
	Brilliant   int       `json:"brilliant"`
	Mistakes    int       `json:"mistakes"`
	Blunders    int       `json:"blunders"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	DurationMS  int64     `json:"duration_ms"`
}

// Repository persists finished games and their coaching reports.
type Repository interface {
	SaveGame(ctx context.Context, g *GameRecord) error
	SaveReport(ctx context.Context, gameID string, stats []byte) error
	GetGame(ctx context.Context, id string) (*GameRecord, error)
	ListGames(ctx context.Context, limit int) ([]*GameRecord, error)
	GetReport(ctx context.Context, gameID string) ([]byte, error)
	Close() error
}
