package coach

import (
	"strings"
	"testing"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/msgcat"
)

func TestBuildDeckPopulatesPools(t *testing.T) {
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	deck := BuildDeck(cat)

	if len(deck.MistakeRemarks) != 5 || len(deck.BlunderRemarks) != 5 {
		t.Fatalf("remark pools: mistake=%d blunder=%d, want 5 each",
			len(deck.MistakeRemarks), len(deck.BlunderRemarks))
	}
	for _, tier := range []engine.Tier{engine.TierBrilliant, engine.TierBest, engine.TierGood, engine.TierMistake, engine.TierBlunder} {
		if deck.Descriptions[tier] == "" {
			t.Fatalf("missing description for tier %s", tier)
		}
	}
	if !strings.Contains(deck.InaccuracyBest, "%s") {
		t.Fatalf("inaccuracy template must take a notation: %q", deck.InaccuracyBest)
	}
	if deck.InaccuracyPlain == "" {
		t.Fatalf("missing inaccuracy fallback")
	}
}

func TestRenderHints(t *testing.T) {
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	hints := []engine.Hint{
		{Type: engine.HintDevelopment, Count: 3},
		{Type: engine.HintThreat, Count: 1},
		{Type: engine.HintCenter, Count: -2},
	}
	out := RenderHints(cat, hints)
	if len(out) != 3 {
		t.Fatalf("rendered %d hints, want 3", len(out))
	}
	if !strings.Contains(out[0], "3") {
		t.Fatalf("development hint missing count: %q", out[0])
	}
}
