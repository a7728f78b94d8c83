package session

import (
	"time"

	"github.com/park285/chess-coach/internal/engine"
)

// Mode selects who plays black.
type Mode string

const (
	ModeVsBot Mode = "vs_bot"
	ModeLocal Mode = "local"
)

// ParseMode normalizes a mode token, defaulting to vs_bot.
func ParseMode(s string) Mode {
	if Mode(s) == ModeLocal {
		return ModeLocal
	}
	return ModeVsBot
}

// Status represents a session lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
	StatusTimeout  Status = "TIMEOUT"
)

// End reasons recorded on a finished session.
const (
	EndKingCapture  = "king_capture"
	EndNoLegalMoves = "no_legal_moves"
	EndTimeout      = "timeout"
	EndResignation  = "resignation"
)

// Allotments are the selectable initial clock values, applied to both sides.
var Allotments = []time.Duration{
	300 * time.Second,
	600 * time.Second,
	900 * time.Second,
	1800 * time.Second,
}

// ValidAllotment reports whether d is one of the selectable clock values.
func ValidAllotment(d time.Duration) bool {
	for _, a := range Allotments {
		if d == a {
			return true
		}
	}
	return false
}

// GameSession is an immutable per-turn snapshot. Mutating operations return
// a fresh value; collaborators read snapshots and never reach into the board
// behind one.
type GameSession struct {
	ID          string              `json:"id"`
	Mode        Mode                `json:"mode"`
	Difficulty  engine.Difficulty   `json:"difficulty"`
	PlayerColor engine.Color        `json:"player_color"`
	Board       *engine.Board       `json:"board"`
	Turn        engine.Color        `json:"turn"`
	History     []engine.MoveRecord `json:"history"`
	Status      Status              `json:"status"`
	Winner      engine.Color        `json:"winner,omitempty"`
	EndReason   string              `json:"end_reason,omitempty"`
	Eval        float64             `json:"eval"`
	WhiteClock  time.Duration       `json:"white_clock"`
	BlackClock  time.Duration       `json:"black_clock"`
	Allotment   time.Duration       `json:"allotment"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Clone deep-copies the snapshot so the caller can mutate its own copy.
func (s GameSession) Clone() GameSession {
	out := s
	if s.Board != nil {
		out.Board = s.Board.Clone()
	}
	out.History = append([]engine.MoveRecord(nil), s.History...)
	return out
}

// Active reports whether moves can still be played.
func (s GameSession) Active() bool { return s.Status == StatusActive }

// ClockFor returns the remaining time for color.
func (s GameSession) ClockFor(color engine.Color) time.Duration {
	if color == engine.White {
		return s.WhiteClock
	}
	return s.BlackClock
}

// BotColor returns the automated side, or "" in local mode.
func (s GameSession) BotColor() engine.Color {
	if s.Mode != ModeVsBot {
		return ""
	}
	return s.PlayerColor.Opponent()
}
