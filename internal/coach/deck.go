package coach

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/msgcat"
	"github.com/park285/chess-coach/internal/obslog"
)

// BuildDeck assembles the classifier's copy deck from the message catalog.
// The engine stays text-free; all coaching copy lives in the catalog so
// operators can override it without a rebuild.
func BuildDeck(cat *msgcat.Catalog) engine.CopyDeck {
	deck := engine.CopyDeck{
		Descriptions:   make(map[engine.Tier]string),
		Feedback:       make(map[engine.Tier][]string),
		MistakeRemarks: cat.List("classify.mistake.remarks"),
		BlunderRemarks: cat.List("classify.blunder.remarks"),
	}

	for _, tier := range []engine.Tier{
		engine.TierBrilliant, engine.TierBest, engine.TierGood,
		engine.TierMistake, engine.TierBlunder,
	} {
		if desc, ok := cat.Get(fmt.Sprintf("classify.%s.description", tier)); ok {
			deck.Descriptions[tier] = desc
		}
	}
	for _, tier := range []engine.Tier{
		engine.TierBrilliant, engine.TierBest, engine.TierGood,
		engine.TierInaccuracy, engine.TierMistake, engine.TierBlunder,
	} {
		deck.Feedback[tier] = cat.List(fmt.Sprintf("classify.%s.feedback", tier))
	}

	if v, ok := cat.Get("classify.inaccuracy.best"); ok {
		deck.InaccuracyBest = v
	}
	if v, ok := cat.Get("classify.inaccuracy.plain"); ok {
		deck.InaccuracyPlain = v
	}
	return deck
}

var hintKeys = map[engine.HintType]string{
	engine.HintDevelopment: "hint.development",
	engine.HintThreat:      "hint.threat",
	engine.HintCenter:      "hint.center",
}

// RenderHints turns structured hints into display text via the catalog.
// A hint whose template fails to render is dropped rather than surfaced
// half-formed.
func RenderHints(cat *msgcat.Catalog, hints []engine.Hint) []string {
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		key, ok := hintKeys[h.Type]
		if !ok {
			continue
		}
		text, err := cat.Render(key, map[string]any{"Count": h.Count})
		if err != nil {
			obslog.L().Warn("hint template render failed",
				zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, text)
	}
	return out
}
