package engine

// IsLegal reports whether moving piece from from to to obeys its movement
// rule on board. Pure function: the board is never mutated.
//
// The rule set is deliberately reduced: no castling, no en passant, no
// promotion, and no check-safety (a king may step onto an attacked square).
// The game ends elsewhere when a king is physically captured.
func IsLegal(board *Board, from, to Square, piece *Piece) bool {
	if piece == nil || !to.InBounds() || !from.InBounds() {
		return false
	}
	if from == to {
		return false
	}
	if target := board.At(to); target != nil && target.Color == piece.Color {
		return false
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	switch piece.Kind {
	case Pawn:
		return pawnLegal(board, from, to, piece, dRow, dCol)
	case Knight:
		return (abs(dRow) == 1 && abs(dCol) == 2) || (abs(dRow) == 2 && abs(dCol) == 1)
	case Bishop:
		return abs(dRow) == abs(dCol) && pathClear(board, from, to)
	case Rook:
		return (dRow == 0 || dCol == 0) && pathClear(board, from, to)
	case Queen:
		return (dRow == 0 || dCol == 0 || abs(dRow) == abs(dCol)) && pathClear(board, from, to)
	case King:
		return abs(dRow) <= 1 && abs(dCol) <= 1
	}
	return false
}

func pawnLegal(board *Board, from, to Square, piece *Piece, dRow, dCol int) bool {
	dir := -1 // white advances toward row 0
	startRow := 6
	if piece.Color == Black {
		dir = 1
		startRow = 1
	}

	// single push
	if dCol == 0 && dRow == dir && board.At(to) == nil {
		return true
	}
	// double push from the starting rank, both squares empty
	if dCol == 0 && dRow == 2*dir && from.Row == startRow {
		mid := Square{Row: from.Row + dir, Col: from.Col}
		return board.At(mid) == nil && board.At(to) == nil
	}
	// diagonal capture only
	if abs(dCol) == 1 && dRow == dir {
		target := board.At(to)
		return target != nil && target.Color != piece.Color
	}
	return false
}

// pathClear checks every square strictly between from and to. Only called
// for straight or diagonal lines.
func pathClear(board *Board, from, to Square) bool {
	stepRow := sign(to.Row - from.Row)
	stepCol := sign(to.Col - from.Col)
	cur := Square{Row: from.Row + stepRow, Col: from.Col + stepCol}
	for cur != to {
		if board.At(cur) != nil {
			return false
		}
		cur.Row += stepRow
		cur.Col += stepCol
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
