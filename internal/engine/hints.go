package engine

// HintType tags the rule that produced a hint.
type HintType string

const (
	HintDevelopment HintType = "development"
	HintThreat      HintType = "threat"
	HintCenter      HintType = "center"
)

// Hint is one coaching observation. Count carries the rule's datum: the
// undeveloped-minor count, the threatened-piece count, or the center-control
// balance. Rendering to text happens downstream.
type Hint struct {
	Type  HintType `json:"type"`
	Count int      `json:"count"`
}

const maxHints = 3

// minorHomes are the back-rank knight and bishop starting squares.
var minorHomes = map[Color][4]Square{
	White: {{7, 1}, {7, 2}, {7, 5}, {7, 6}},
	Black: {{0, 1}, {0, 2}, {0, 5}, {0, 6}},
}

// DeriveHints inspects board from mover's point of view and returns at most
// three hints in fixed priority order: opening development, tactical
// threats, then center control.
func DeriveHints(board *Board, mover Color, moveCount int) []Hint {
	var hints []Hint

	if moveCount < 10 {
		undeveloped := UndevelopedMinors(board, mover)
		if undeveloped > 2 {
			hints = append(hints, Hint{Type: HintDevelopment, Count: undeveloped})
		}
	}

	if threatened := threatenedPieces(board, mover); threatened > 0 {
		hints = append(hints, Hint{Type: HintThreat, Count: threatened})
	}

	if control := CenterControl(board, mover); control < -1 {
		hints = append(hints, Hint{Type: HintCenter, Count: control})
	}

	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints
}

// UndevelopedMinors counts color's knights and bishops still sitting unmoved
// on their starting squares.
func UndevelopedMinors(board *Board, color Color) int {
	count := 0
	for _, sq := range minorHomes[color] {
		p := board.At(sq)
		if p == nil || p.Color != color || p.HasMoved {
			continue
		}
		if p.Kind == Knight || p.Kind == Bishop {
			count++
		}
	}
	return count
}

// threatenedPieces counts mover's pieces that at least one opposing piece
// could legally capture right now.
func threatenedPieces(board *Board, mover Color) int {
	count := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			own := Square{Row: row, Col: col}
			p := board.At(own)
			if p == nil || p.Color != mover {
				continue
			}
			if squareAttacked(board, own, mover.Opponent()) {
				count++
			}
		}
	}
	return count
}

func squareAttacked(board *Board, target Square, by Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{Row: row, Col: col}
			p := board.At(from)
			if p == nil || p.Color != by {
				continue
			}
			if IsLegal(board, from, target, p) {
				return true
			}
		}
	}
	return false
}

// CenterControl sums the four center squares: +1 for mover's piece, -1 for
// an opposing piece, 0 when empty.
func CenterControl(board *Board, mover Color) int {
	control := 0
	for _, sq := range centerSquares {
		p := board.At(sq)
		if p == nil {
			continue
		}
		if p.Color == mover {
			control++
		} else {
			control--
		}
	}
	return control
}
