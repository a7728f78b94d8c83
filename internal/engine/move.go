package engine

import "time"

// MoveRecord is one applied ply. Records are immutable once appended to a
// session's history; the slice index is the ply order (even index = white).
type MoveRecord struct {
	Kind           Kind           `json:"kind"`
	From           Square         `json:"from"`
	To             Square         `json:"to"`
	Captured       *Piece         `json:"captured,omitempty"`
	Notation       string         `json:"notation"`
	Mover          Color          `json:"mover"`
	Timestamp      time.Time      `json:"timestamp"`
	Evaluation     float64        `json:"evaluation"`
	Classification Classification `json:"classification"`
}
