package coachdto

import "time"

// PieceView is one occupied square in a board snapshot.
type PieceView struct {
	Square string `json:"square"` // file+rank, e.g. "e2"
	Kind   string `json:"kind"`
	Color  string `json:"color"`
	Moved  bool   `json:"moved"`
}

// SessionState is the externally visible session snapshot.
type SessionState struct {
	SessionID  string      `json:"session_id"`
	Mode       string      `json:"mode"`
	Difficulty string      `json:"difficulty"`
	Turn       string      `json:"turn"`
	Status     string      `json:"status"`
	Winner     string      `json:"winner,omitempty"`
	EndReason  string      `json:"end_reason,omitempty"`
	Evaluation float64     `json:"evaluation"`
	Board      []PieceView `json:"board"`
	Moves      []MoveView  `json:"moves"`
	WhiteClock int         `json:"white_clock_sec"`
	BlackClock int         `json:"black_clock_sec"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MoveView is one history entry.
type MoveView struct {
	Notation    string    `json:"notation"`
	Mover       string    `json:"mover"`
	Captured    string    `json:"captured,omitempty"`
	Evaluation  float64   `json:"evaluation"`
	Tier        string    `json:"tier"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	Feedback    []string  `json:"feedback,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MoveSummary is the response to a move request.
type MoveSummary struct {
	Applied  bool          `json:"applied"`
	State    *SessionState `json:"state"`
	Move     *MoveView     `json:"move,omitempty"`
	Hints    []string      `json:"hints,omitempty"`
	Finished bool          `json:"finished"`
}
