package coach

import (
	"math/rand"
	"testing"
	"time"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/msgcat"
)

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewAggregator(cat)
}

func rec(tier engine.Tier, mover engine.Color) engine.MoveRecord {
	return engine.MoveRecord{
		Mover:          mover,
		Classification: engine.Classification{Tier: tier, Symbol: tier.Symbol()},
	}
}

func historyWith(total, blunders, mistakes int, mover engine.Color) []engine.MoveRecord {
	h := make([]engine.MoveRecord, 0, total)
	for i := 0; i < blunders; i++ {
		h = append(h, rec(engine.TierBlunder, mover))
	}
	for i := 0; i < mistakes; i++ {
		h = append(h, rec(engine.TierMistake, mover))
	}
	for len(h) < total {
		h = append(h, rec(engine.TierGood, mover))
	}
	return h
}

func hasWeakness(stats SessionStats, title string) bool {
	for _, w := range stats.Weaknesses {
		if w.Title == title {
			return true
		}
	}
	return false
}

func hasStrength(stats SessionStats, title string) bool {
	for _, s := range stats.Strengths {
		if s.Title == title {
			return true
		}
	}
	return false
}

func TestAggregateAccuracyAndTacticalWeakness(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(1))
	history := historyWith(20, 3, 1, engine.White)

	stats := a.Aggregate(history, engine.NewBoard(), engine.White, 300*time.Second, 600*time.Second, rng)

	if stats.Accuracy != 80.0 {
		t.Fatalf("accuracy = %v, want 80.0", stats.Accuracy)
	}
	if !hasWeakness(stats, "Tactical Awareness") {
		t.Fatalf("three blunders must surface the tactical weakness")
	}
	if hasStrength(stats, "Consistency") {
		t.Fatalf("accuracy of exactly 80 must not count as consistent")
	}
	if stats.Performance.TacticalAccuracy != 40 {
		t.Fatalf("tactical accuracy = %v, want 40", stats.Performance.TacticalAccuracy)
	}
}

func TestAggregateZeroMoves(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(1))

	stats := a.Aggregate(nil, engine.NewBoard(), engine.White, 600*time.Second, 600*time.Second, rng)

	if stats.Accuracy != 100 {
		t.Fatalf("zero-move accuracy = %v, want 100", stats.Accuracy)
	}
	if stats.Performance.TimeManagement != 100 {
		t.Fatalf("untouched clock should score 100, got %v", stats.Performance.TimeManagement)
	}
}

func TestAggregateOpeningWeakness(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(1))
	history := historyWith(12, 0, 0, engine.White)

	// all four minors still at home on the initial board
	stats := a.Aggregate(history, engine.NewBoard(), engine.White, 300*time.Second, 600*time.Second, rng)
	if !hasWeakness(stats, "Opening Development") {
		t.Fatalf("undeveloped minors past move 10 must surface the opening weakness")
	}
	if stats.Performance.OpeningKnowledge != 40 {
		t.Fatalf("opening knowledge = %v, want 40", stats.Performance.OpeningKnowledge)
	}

	// developed board clears the finding
	b := engine.NewBoard()
	b.Apply(engine.Square{Row: 7, Col: 1}, engine.Square{Row: 5, Col: 2})
	b.Apply(engine.Square{Row: 7, Col: 6}, engine.Square{Row: 5, Col: 5})
	b.Apply(engine.Square{Row: 7, Col: 2}, engine.Square{Row: 5, Col: 4})
	stats = a.Aggregate(history, b, engine.White, 300*time.Second, 600*time.Second, rng)
	if hasWeakness(stats, "Opening Development") {
		t.Fatalf("one undeveloped minor is within tolerance")
	}
}

func TestAggregateStrengths(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(1))

	history := historyWith(10, 0, 0, engine.White)
	history[0] = rec(engine.TierBrilliant, engine.White)
	history[1] = rec(engine.TierBrilliant, engine.White)

	stats := a.Aggregate(history, engine.NewBoard(), engine.White, 300*time.Second, 600*time.Second, rng)
	if !hasStrength(stats, "Strategic Vision") {
		t.Fatalf("two brilliant moves must surface strategic vision")
	}
	if !hasStrength(stats, "Consistency") {
		t.Fatalf("accuracy 100 must surface consistency")
	}
}

func TestAggregateCountsOwnMovesOnly(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(1))

	history := append(historyWith(5, 0, 0, engine.White), historyWith(5, 5, 0, engine.Black)...)
	stats := a.Aggregate(history, engine.NewBoard(), engine.White, 300*time.Second, 600*time.Second, rng)

	if stats.TotalMoves != 5 || stats.BlunderCount != 0 {
		t.Fatalf("opponent blunders leaked into the report: %+v", stats)
	}
}

func TestAggregatePerformanceRanges(t *testing.T) {
	a := testAggregator(t)
	rng := rand.New(rand.NewSource(7))

	short := a.Aggregate(historyWith(10, 0, 0, engine.White), engine.NewBoard(), engine.White, 0, 600*time.Second, rng)
	if short.Performance.EndgameSkill != 0 {
		t.Fatalf("endgame skill must be 0 for short games, got %v", short.Performance.EndgameSkill)
	}
	if p := short.Performance.PositionalAwareness; p < 60 || p > 90 {
		t.Fatalf("positional awareness %v outside [60,90]", p)
	}
	if short.Performance.TimeManagement != 0 {
		t.Fatalf("empty clock should score 0, got %v", short.Performance.TimeManagement)
	}

	long := a.Aggregate(historyWith(41, 0, 0, engine.White), engine.NewBoard(), engine.White, 0, 600*time.Second, rng)
	if p := long.Performance.EndgameSkill; p < 50 || p > 80 {
		t.Fatalf("endgame skill %v outside [50,80]", p)
	}
}
