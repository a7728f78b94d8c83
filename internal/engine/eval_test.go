package engine

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEvaluateInitialPosition(t *testing.T) {
	b := NewBoard()
	// material balanced; center empty; knight-development terms cancel
	// per the reference's asymmetric signs (-0.2*2 white, +0.2*2 black)
	got := Evaluate(b)
	if !almostEqual(got, 0) {
		t.Fatalf("initial evaluation = %v, want 0", got)
	}
}

func TestEvaluateAfterPawnE4(t *testing.T) {
	b := NewBoard()
	b.Apply(Square{6, 4}, Square{4, 4})
	got := Evaluate(b)
	// material unchanged, +0.3 for white on a center square, /10
	if !almostEqual(got, 0.03) {
		t.Fatalf("evaluation after e2-e4 = %v, want 0.03", got)
	}
}

func TestEvaluateMaterialSign(t *testing.T) {
	b := emptyBoard()
	place(b, Square{4, 0}, Queen, White)
	place(b, Square{3, 0}, Pawn, Black)
	if got := Evaluate(b); !almostEqual(got, 0.8) {
		t.Fatalf("evaluation = %v, want 0.8", got)
	}
}

func TestKnightDevelopmentAsymmetry(t *testing.T) {
	b := emptyBoard()
	place(b, Square{7, 1}, Knight, White)
	if got := Evaluate(b); !almostEqual(got, (3-0.2)/10) {
		t.Fatalf("unmoved white knight at home = %v, want %v", got, (3-0.2)/10)
	}
	b2 := emptyBoard()
	place(b2, Square{0, 6}, Knight, Black)
	if got := Evaluate(b2); !almostEqual(got, (-3+0.2)/10) {
		t.Fatalf("unmoved black knight at home = %v, want %v", got, (-3+0.2)/10)
	}
	// once moved (even back onto its home square) the term disappears
	b3 := emptyBoard()
	moved := place(b3, Square{7, 1}, Knight, White)
	moved.HasMoved = true
	if got := Evaluate(b3); !almostEqual(got, 0.3) {
		t.Fatalf("moved white knight at home = %v, want 0.3", got)
	}
}

func TestSuggestMoveWithinFirstThree(t *testing.T) {
	b := NewBoard()
	moves := GenerateMoves(b, White)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		pick := SuggestMove(b, White, rng)
		if pick == nil {
			t.Fatalf("expected a suggestion on the initial board")
		}
		found := false
		for _, mv := range moves[:3] {
			if *pick == mv {
				found = true
			}
		}
		if !found {
			t.Fatalf("suggestion %v not among first three candidates", pick)
		}
	}
}

func TestSuggestMoveEmptyBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if pick := SuggestMove(emptyBoard(), White, rng); pick != nil {
		t.Fatalf("expected nil suggestion without pieces, got %v", pick)
	}
}
