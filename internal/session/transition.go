package session

import (
	"math/rand"
	"time"

	"github.com/park285/chess-coach/internal/engine"
)

// Mover runs the per-move pipeline: legality, board application, evaluation,
// classification, hints. It holds the only random source the pipeline uses
// so tests can seed it.
type Mover struct {
	classifier *engine.Classifier
	rng        *rand.Rand
	now        func() time.Time
}

// NewMover returns a move pipeline using the given copy deck and random
// source.
func NewMover(deck engine.CopyDeck, rng *rand.Rand) *Mover {
	return &Mover{
		classifier: engine.NewClassifier(deck),
		rng:        rng,
		now:        time.Now,
	}
}

// MoveOutcome describes what one ApplyMove call did.
type MoveOutcome struct {
	// Applied is false for an illegal or out-of-turn request; the returned
	// snapshot is then the input unchanged.
	Applied bool              `json:"applied"`
	Record  engine.MoveRecord `json:"record"`
	Hints   []engine.Hint     `json:"hints"`
	Over    bool              `json:"over"`
}

// ApplyMove is the session transition: it takes a snapshot and a requested
// move and returns the successor snapshot. Illegal requests are rejected
// silently, per the engine's error model, by returning the input snapshot
// with Applied=false. The input is never mutated.
func (m *Mover) ApplyMove(s GameSession, from, to engine.Square) (GameSession, MoveOutcome) {
	if !s.Active() {
		return s, MoveOutcome{}
	}
	piece := s.Board.At(from)
	if piece == nil || piece.Color != s.Turn {
		return s, MoveOutcome{}
	}
	if !engine.IsLegal(s.Board, from, to, piece) {
		return s, MoveOutcome{}
	}

	// the suggestion the classifier may cite is computed on the position
	// before the move, like the live hint the player saw
	suggested := engine.SuggestMove(s.Board, s.Turn, m.rng)

	next := s.Clone()
	captured := next.Board.Apply(from, to)
	newEval := engine.Evaluate(next.Board)
	cls := m.classifier.Classify(s.Eval, newEval, s.Turn, suggested, m.rng)

	rec := engine.MoveRecord{
		Kind:           piece.Kind,
		From:           from,
		To:             to,
		Captured:       captured,
		Notation:       engine.MoveNotation(piece.Kind, from, to),
		Mover:          s.Turn,
		Timestamp:      m.now(),
		Evaluation:     newEval,
		Classification: cls,
	}
	next.History = append(next.History, rec)
	next.Eval = newEval
	next.Turn = s.Turn.Opponent()
	next.UpdatedAt = rec.Timestamp

	out := MoveOutcome{Applied: true, Record: rec}

	switch {
	case captured != nil && captured.Kind == engine.King:
		next.Status = StatusFinished
		next.Winner = s.Turn
		next.EndReason = EndKingCapture
	case len(engine.GenerateMoves(next.Board, next.Turn)) == 0:
		// no stalemate in this rule set: a side with no moves simply loses
		next.Status = StatusFinished
		next.Winner = s.Turn
		next.EndReason = EndNoLegalMoves
	default:
		out.Hints = engine.DeriveHints(next.Board, s.Turn, len(next.History))
	}
	out.Over = !next.Active()
	return next, out
}
