package engine

import "fmt"

// Candidate is a generated (from, to) pair with its transcript notation.
type Candidate struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Notation string `json:"notation"`
}

// GenerateMoves enumerates every legal move for color. Enumeration order is
// part of the contract: source squares row-major, destinations row-major.
// The opponent selector's tie-breaks depend on it.
func GenerateMoves(board *Board, color Color) []Candidate {
	var moves []Candidate
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{Row: row, Col: col}
			piece := board.At(from)
			if piece == nil || piece.Color != color {
				continue
			}
			for toRow := 0; toRow < 8; toRow++ {
				for toCol := 0; toCol < 8; toCol++ {
					to := Square{Row: toRow, Col: toCol}
					if IsLegal(board, from, to, piece) {
						moves = append(moves, Candidate{
							From:     from,
							To:       to,
							Notation: MoveNotation(piece.Kind, from, to),
						})
					}
				}
			}
		}
	}
	return moves
}

// MoveNotation renders kind+from+"-"+to, e.g. "Kb8-c6" or "e2-e4".
func MoveNotation(kind Kind, from, to Square) string {
	return fmt.Sprintf("%s%s-%s", kind.Letter(), from.Notation(), to.Notation())
}
