package engine

import "fmt"

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Kind identifies a piece type.
type Kind string

const (
	Pawn   Kind = "pawn"
	Knight Kind = "knight"
	Bishop Kind = "bishop"
	Rook   Kind = "rook"
	Queen  Kind = "queen"
	King   Kind = "king"
)

// Letter returns the notation letter for the kind: uppercase first letter,
// empty for pawns. Knights and kings intentionally share "K"; the transcript
// format inherited this and downstream tooling relies on it staying stable.
func (k Kind) Letter() string {
	if k == Pawn {
		return ""
	}
	return string(k[0] - 'a' + 'A')
}

// Square addresses a board cell. Row 0 is the black back rank (rank 8),
// row 7 the white back rank (rank 1). White pawns advance toward row 0.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the square lies on the 8x8 grid.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// Notation renders the square as file+rank, e.g. {6,4} -> "e2".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// Piece is a single chessman. HasMoved is set the first time the piece
// moves and never cleared; it only feeds development heuristics.
type Piece struct {
	Kind     Kind  `json:"kind"`
	Color    Color `json:"color"`
	HasMoved bool  `json:"has_moved"`
}

// Board is the 8x8 grid. A nil entry is an empty square. There is no
// one-king-per-color invariant: a captured king is the win condition,
// not a corrupt board.
type Board [8][8]*Piece

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard initial setup.
func NewBoard() *Board {
	b := &Board{}
	for col := 0; col < 8; col++ {
		b[0][col] = &Piece{Kind: backRank[col], Color: Black}
		b[1][col] = &Piece{Kind: Pawn, Color: Black}
		b[6][col] = &Piece{Kind: Pawn, Color: White}
		b[7][col] = &Piece{Kind: backRank[col], Color: White}
	}
	return b
}

// At returns the piece on sq, or nil for an empty or off-board square.
func (b *Board) At(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b[sq.Row][sq.Col]
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	out := &Board{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p != nil {
				cp := *p
				out[row][col] = &cp
			}
		}
	}
	return out
}

// Apply moves the piece on from to to, returning the captured piece if any.
// Callers are expected to have validated the move; Apply itself only moves
// grid entries and flips HasMoved.
func (b *Board) Apply(from, to Square) *Piece {
	piece := b.At(from)
	if piece == nil {
		return nil
	}
	captured := b.At(to)
	piece.HasMoved = true
	b[to.Row][to.Col] = piece
	b[from.Row][from.Col] = nil
	return captured
}

// KingAlive reports whether color still has its king on the board.
func (b *Board) KingAlive(color Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p != nil && p.Kind == King && p.Color == color {
				return true
			}
		}
	}
	return false
}
