package coach

import (
	"math/rand"
	"time"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/msgcat"
)

// Severity grades a weakness finding.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Finding is one weakness surfaced by the post-game scan.
type Finding struct {
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Severity Severity `json:"severity"`
}

// Strength is a positive pattern observed over the session.
type Strength struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Recommendation points at training material matched to a weakness.
type Recommendation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// PerformanceScores are five named percentages in [0,100]. Positional
// awareness and endgame skill are placeholder estimates drawn from a range,
// not computed from the game.
type PerformanceScores struct {
	TacticalAccuracy    float64 `json:"tactical_accuracy"`
	PositionalAwareness float64 `json:"positional_awareness"`
	EndgameSkill        float64 `json:"endgame_skill"`
	OpeningKnowledge    float64 `json:"opening_knowledge"`
	TimeManagement      float64 `json:"time_management"`
}

// SessionStats is the one-shot coaching report produced at game end.
type SessionStats struct {
	TotalMoves      int               `json:"total_moves"`
	Accuracy        float64           `json:"accuracy"`
	BrilliantCount  int               `json:"brilliant_count"`
	MistakeCount    int               `json:"mistake_count"`
	BlunderCount    int               `json:"blunder_count"`
	Weaknesses      []Finding         `json:"weaknesses"`
	Strengths       []Strength        `json:"strengths"`
	Recommendations []Recommendation  `json:"recommendations"`
	Performance     PerformanceScores `json:"performance"`
}

// Aggregator turns a finished session's move history into SessionStats.
type Aggregator struct {
	cat *msgcat.Catalog
}

// NewAggregator returns an aggregator reading report copy from cat.
func NewAggregator(cat *msgcat.Catalog) *Aggregator {
	return &Aggregator{cat: cat}
}

// Aggregate scans history and the final board from player's point of view.
// Tier counts and accuracy cover only player's own moves; moveCount-based
// rules use the full ply count. With zero own moves accuracy reports 100.
func (a *Aggregator) Aggregate(
	history []engine.MoveRecord,
	finalBoard *engine.Board,
	player engine.Color,
	remaining, allotment time.Duration,
	rng *rand.Rand,
) SessionStats {
	stats := SessionStats{
		Weaknesses:      []Finding{},
		Strengths:       []Strength{},
		Recommendations: []Recommendation{},
	}

	for _, rec := range history {
		if rec.Mover != player {
			continue
		}
		stats.TotalMoves++
		switch rec.Classification.Tier {
		case engine.TierBrilliant:
			stats.BrilliantCount++
		case engine.TierMistake:
			stats.MistakeCount++
		case engine.TierBlunder:
			stats.BlunderCount++
		}
	}

	if stats.TotalMoves == 0 {
		stats.Accuracy = 100
	} else {
		stats.Accuracy = float64(stats.TotalMoves-stats.BlunderCount-stats.MistakeCount) /
			float64(stats.TotalMoves) * 100
	}

	plyCount := len(history)
	undeveloped := engine.UndevelopedMinors(finalBoard, player)

	if stats.BlunderCount > 2 {
		stats.Weaknesses = append(stats.Weaknesses, Finding{
			Title:    a.text("report.weakness.tactical.title"),
			Detail:   a.text("report.weakness.tactical.detail"),
			Severity: SeverityHigh,
		})
		stats.Recommendations = append(stats.Recommendations, Recommendation{
			Title:  a.text("report.recommendation.tactical.title"),
			Detail: a.text("report.recommendation.tactical.detail"),
		})
	}
	if plyCount > 10 && undeveloped > 1 {
		stats.Weaknesses = append(stats.Weaknesses, Finding{
			Title:    a.text("report.weakness.opening.title"),
			Detail:   a.text("report.weakness.opening.detail"),
			Severity: SeverityMedium,
		})
		stats.Recommendations = append(stats.Recommendations, Recommendation{
			Title:  a.text("report.recommendation.opening.title"),
			Detail: a.text("report.recommendation.opening.detail"),
		})
	}

	if stats.BrilliantCount > 1 {
		stats.Strengths = append(stats.Strengths, Strength{
			Title:  a.text("report.strength.strategic.title"),
			Detail: a.text("report.strength.strategic.detail"),
		})
	}
	if stats.Accuracy > 80 {
		stats.Strengths = append(stats.Strengths, Strength{
			Title:  a.text("report.strength.consistency.title"),
			Detail: a.text("report.strength.consistency.detail"),
		})
	}

	stats.Performance = PerformanceScores{
		TacticalAccuracy:    clampPct(100 - float64(stats.BlunderCount)*20),
		PositionalAwareness: 60 + rng.Float64()*30,
		OpeningKnowledge:    clampPct(100 - float64(undeveloped)*15),
		TimeManagement:      timeManagement(remaining, allotment),
	}
	if plyCount > 40 {
		stats.Performance.EndgameSkill = 50 + rng.Float64()*30
	}
	return stats
}

func (a *Aggregator) text(key string) string {
	v, _ := a.cat.Get(key)
	return v
}

func timeManagement(remaining, allotment time.Duration) float64 {
	if allotment <= 0 {
		return 0
	}
	return clampPct(remaining.Seconds() / allotment.Seconds() * 100)
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
