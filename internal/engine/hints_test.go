package engine

import "testing"

func TestOpeningHintOnInitialBoard(t *testing.T) {
	b := NewBoard()
	hints := DeriveHints(b, White, 0)
	if len(hints) == 0 || hints[0].Type != HintDevelopment {
		t.Fatalf("expected a development hint first on the initial board, got %v", hints)
	}
	if hints[0].Count != 4 {
		t.Fatalf("all four minors undeveloped, got count %d", hints[0].Count)
	}
}

func TestOpeningHintSuppressedAfterMoveTen(t *testing.T) {
	b := NewBoard()
	for _, h := range DeriveHints(b, White, 10) {
		if h.Type == HintDevelopment {
			t.Fatalf("development hint must not fire once moveCount reaches 10")
		}
	}
}

func TestOpeningHintRequiresMoreThanTwoUndeveloped(t *testing.T) {
	b := NewBoard()
	// develop both knights: 2 undeveloped minors remain, below threshold
	b.Apply(Square{7, 1}, Square{5, 2})
	b.Apply(Square{7, 6}, Square{5, 5})
	for _, h := range DeriveHints(b, White, 4) {
		if h.Type == HintDevelopment {
			t.Fatalf("development hint requires more than two undeveloped minors")
		}
	}
}

func TestThreatHintCountsAttackedPieces(t *testing.T) {
	b := emptyBoard()
	place(b, Square{4, 4}, Knight, White)
	place(b, Square{4, 0}, Rook, Black)
	hints := DeriveHints(b, White, 20)
	if len(hints) == 0 || hints[0].Type != HintThreat {
		t.Fatalf("expected threat hint, got %v", hints)
	}
	if hints[0].Count != 1 {
		t.Fatalf("one piece threatened, got %d", hints[0].Count)
	}
}

func TestCenterHintOnLostCenter(t *testing.T) {
	b := emptyBoard()
	place(b, Square{3, 3}, Pawn, Black)
	place(b, Square{4, 4}, Pawn, Black)
	hints := DeriveHints(b, White, 20)
	found := false
	for _, h := range hints {
		if h.Type == HintCenter {
			found = true
			if h.Count != -2 {
				t.Fatalf("center control = %d, want -2", h.Count)
			}
		}
	}
	if !found {
		t.Fatalf("expected center-control warning, got %v", hints)
	}
}

func TestCenterHintNeedsWorseThanMinusOne(t *testing.T) {
	b := emptyBoard()
	place(b, Square{3, 3}, Pawn, Black)
	for _, h := range DeriveHints(b, White, 20) {
		if h.Type == HintCenter {
			t.Fatalf("control of -1 must not warn")
		}
	}
}

func TestHintsCappedAtThree(t *testing.T) {
	// all three rules firing still yields at most three hints
	b := NewBoard()
	place(b, Square{3, 3}, Pawn, Black)
	place(b, Square{3, 4}, Pawn, Black)
	place(b, Square{4, 3}, Pawn, Black)
	place(b, Square{5, 3}, Knight, Black) // attacks white pawns
	hints := DeriveHints(b, White, 2)
	if len(hints) > 3 {
		t.Fatalf("hints must be capped at three, got %d", len(hints))
	}
	if len(hints) != 3 {
		t.Fatalf("expected all three rules to fire, got %v", hints)
	}
}
