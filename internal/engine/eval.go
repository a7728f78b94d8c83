package engine

import "math/rand"

// pieceValues are conventional material weights; the king is worthless here
// because losing it ends the game instead of dominating the score.
var pieceValues = map[Kind]float64{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   0,
}

// centerSquares are the four central cells used for positional scoring.
var centerSquares = [4]Square{{3, 3}, {3, 4}, {4, 3}, {4, 4}}

var (
	whiteKnightHomes = [2]Square{{7, 1}, {7, 6}}
	blackKnightHomes = [2]Square{{0, 1}, {0, 6}}
)

// Evaluate scores board with a one-ply static heuristic. Positive favors
// white, negative favors black.
//
// The knight-development term carries opposite signs for the two colors
// (white is penalized, black rewarded, for the same undeveloped state).
// That matches the reference behavior and is preserved pending a product
// decision; see DESIGN.md.
func Evaluate(board *Board) float64 {
	material := 0.0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := board[row][col]
			if p == nil {
				continue
			}
			if p.Color == White {
				material += pieceValues[p.Kind]
			} else {
				material -= pieceValues[p.Kind]
			}
		}
	}

	positional := 0.0
	for _, sq := range centerSquares {
		if p := board.At(sq); p != nil {
			if p.Color == White {
				positional += 0.3
			} else {
				positional -= 0.3
			}
		}
	}
	for _, sq := range whiteKnightHomes {
		if p := board.At(sq); p != nil && p.Kind == Knight && p.Color == White && !p.HasMoved {
			positional -= 0.2
		}
	}
	for _, sq := range blackKnightHomes {
		if p := board.At(sq); p != nil && p.Kind == Knight && p.Color == Black && !p.HasMoved {
			positional += 0.2
		}
	}

	return (material + positional) / 10
}

// SuggestMove picks a "best move" for the side to move: a uniform draw from
// the first min(3, N) generated candidates. Non-deterministic by design; it
// stands in for a real search and must not pretend to be one.
func SuggestMove(board *Board, color Color, rng *rand.Rand) *Candidate {
	moves := GenerateMoves(board, color)
	if len(moves) == 0 {
		return nil
	}
	pool := len(moves)
	if pool > 3 {
		pool = 3
	}
	pick := moves[rng.Intn(pool)]
	return &pick
}
