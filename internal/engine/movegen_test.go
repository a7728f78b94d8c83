package engine

import "testing"

func TestGenerateMovesInitialPosition(t *testing.T) {
	b := NewBoard()
	moves := GenerateMoves(b, White)
	// 16 pawn moves + 4 knight moves
	if len(moves) != 20 {
		t.Fatalf("expected 20 opening moves for white, got %d", len(moves))
	}
	for _, mv := range moves {
		if target := b.At(mv.To); target != nil && target.Color == White {
			t.Fatalf("generated move onto own piece: %s", mv.Notation)
		}
	}
}

func TestGenerationOrderDeterministic(t *testing.T) {
	a := GenerateMoves(NewBoard(), White)
	b := GenerateMoves(NewBoard(), White)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
	// sources must come out row-major
	for i := 1; i < len(a); i++ {
		prev, cur := a[i-1].From, a[i].From
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col < prev.Col) {
			t.Fatalf("source order not row-major at %d: %v after %v", i, cur, prev)
		}
	}
}

func TestMoveNotation(t *testing.T) {
	cases := []struct {
		kind     Kind
		from, to Square
		want     string
	}{
		{Pawn, Square{6, 4}, Square{4, 4}, "e2-e4"},
		{Knight, Square{7, 6}, Square{5, 5}, "Kg1-f3"},
		{Queen, Square{7, 3}, Square{3, 7}, "Qd1-h5"},
		{Rook, Square{0, 0}, Square{0, 3}, "Ra8-d8"},
	}
	for _, tc := range cases {
		if got := MoveNotation(tc.kind, tc.from, tc.to); got != tc.want {
			t.Fatalf("notation(%s %v->%v) = %q, want %q", tc.kind, tc.from, tc.to, got, tc.want)
		}
	}
}
