package httpapi

import (
	"fmt"
	"strings"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/session"
	"github.com/park285/chess-coach/internal/store"
	"github.com/park285/chess-coach/pkg/coachdto"
)

// parseSquare turns "e2" into board coordinates.
func parseSquare(s string) (engine.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return engine.Square{}, fmt.Errorf("bad square %q", s)
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '0')
	sq := engine.Square{Row: 8 - rank, Col: col}
	if !sq.InBounds() {
		return engine.Square{}, fmt.Errorf("square %q off board", s)
	}
	return sq, nil
}

func toState(s session.GameSession) *coachdto.SessionState {
	out := &coachdto.SessionState{
		SessionID:  s.ID,
		Mode:       string(s.Mode),
		Difficulty: string(s.Difficulty),
		Turn:       string(s.Turn),
		Status:     string(s.Status),
		Winner:     string(s.Winner),
		EndReason:  s.EndReason,
		Evaluation: s.Eval,
		WhiteClock: int(s.WhiteClock.Seconds()),
		BlackClock: int(s.BlackClock.Seconds()),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := engine.Square{Row: row, Col: col}
			p := s.Board.At(sq)
			if p == nil {
				continue
			}
			out.Board = append(out.Board, coachdto.PieceView{
				Square: sq.Notation(),
				Kind:   string(p.Kind),
				Color:  string(p.Color),
				Moved:  p.HasMoved,
			})
		}
	}
	out.Moves = make([]coachdto.MoveView, 0, len(s.History))
	for _, rec := range s.History {
		out.Moves = append(out.Moves, toMoveView(rec))
	}
	return out
}

func toMoveView(rec engine.MoveRecord) coachdto.MoveView {
	mv := coachdto.MoveView{
		Notation:    rec.Notation,
		Mover:       string(rec.Mover),
		Evaluation:  rec.Evaluation,
		Tier:        string(rec.Classification.Tier),
		Symbol:      rec.Classification.Symbol,
		Description: rec.Classification.Description,
		Feedback:    rec.Classification.Feedback,
		Timestamp:   rec.Timestamp,
	}
	if rec.Captured != nil {
		mv.Captured = string(rec.Captured.Kind)
	}
	return mv
}

func toGameSummary(g *store.GameRecord) coachdto.GameSummary {
	return coachdto.GameSummary{
		GameID:     g.ID,
		Mode:       g.Mode,
		Difficulty: g.Difficulty,
		Result:     g.Result,
		EndReason:  g.EndReason,
		Accuracy:   g.Accuracy,
		Brilliant:  g.Brilliant,
		Mistakes:   g.Mistakes,
		Blunders:   g.Blunders,
		DurationMS: g.DurationMS,
	}
}
