package engine

import (
	"fmt"
	"math/rand"
)

// Tier is a move-quality bucket.
type Tier string

const (
	TierBrilliant  Tier = "brilliant"
	TierBest       Tier = "best"
	TierGood       Tier = "good"
	TierInaccuracy Tier = "inaccuracy"
	TierMistake    Tier = "mistake"
	TierBlunder    Tier = "blunder"
)

var tierSymbols = map[Tier]string{
	TierBrilliant:  "!!",
	TierBest:       "!",
	TierGood:       "",
	TierInaccuracy: "?",
	TierMistake:    "??",
	TierBlunder:    "???",
}

// Symbol returns the annotation glyph for the tier.
func (t Tier) Symbol() string { return tierSymbols[t] }

// Classification labels one move.
type Classification struct {
	Tier        Tier     `json:"tier"`
	Symbol      string   `json:"symbol"`
	Description string   `json:"description"`
	Feedback    []string `json:"feedback"`
}

// CopyDeck carries the coaching copy the classifier attaches to a tier.
// The deck is loaded from the message catalog by the caller so the engine
// itself stays text-free.
type CopyDeck struct {
	Descriptions map[Tier]string
	Feedback     map[Tier][]string
	// Remark pools appended to mistakes and blunders, one uniform draw each.
	MistakeRemarks []string
	BlunderRemarks []string
	// InaccuracyBest is a fmt template taking the suggested move's notation;
	// InaccuracyPlain is the fallback when no suggestion exists.
	InaccuracyBest  string
	InaccuracyPlain string
}

// Classifier buckets moves by evaluation delta.
type Classifier struct {
	deck CopyDeck
}

// NewClassifier returns a classifier using the given copy deck.
func NewClassifier(deck CopyDeck) *Classifier {
	return &Classifier{deck: deck}
}

// tierFor maps the mover-relative loss to a tier. diff is how much the
// position worsened for the mover; negative means it improved.
func tierFor(diff float64) Tier {
	switch {
	case diff < -2:
		return TierBrilliant
	case diff >= -2 && diff < -0.5:
		return TierBest
	case diff > 0.5 && diff < 1.5:
		return TierInaccuracy
	case diff > 1.5 && diff < 3:
		return TierMistake
	case diff >= 3:
		return TierBlunder
	default:
		// covers (-0.5, 0.5] and the exact 1.5 boundary
		return TierGood
	}
}

// Classify labels the move that took the position from prevEval to newEval.
// The tier, symbol and description are a pure function of the inputs; only
// the appended remark varies, within its documented pool.
func (c *Classifier) Classify(prevEval, newEval float64, mover Color, suggested *Candidate, rng *rand.Rand) Classification {
	diff := prevEval - newEval
	if mover == Black {
		diff = newEval - prevEval
	}

	tier := tierFor(diff)
	out := Classification{
		Tier:     tier,
		Symbol:   tier.Symbol(),
		Feedback: append([]string(nil), c.deck.Feedback[tier]...),
	}

	switch tier {
	case TierInaccuracy:
		if suggested != nil {
			out.Description = fmt.Sprintf(c.deck.InaccuracyBest, suggested.Notation)
		} else {
			out.Description = c.deck.InaccuracyPlain
		}
	default:
		out.Description = c.deck.Descriptions[tier]
	}

	switch tier {
	case TierMistake:
		if len(c.deck.MistakeRemarks) > 0 {
			out.Feedback = append(out.Feedback, c.deck.MistakeRemarks[rng.Intn(len(c.deck.MistakeRemarks))])
		}
	case TierBlunder:
		if len(c.deck.BlunderRemarks) > 0 {
			out.Feedback = append(out.Feedback, c.deck.BlunderRemarks[rng.Intn(len(c.deck.BlunderRemarks))])
		}
	}
	return out
}
