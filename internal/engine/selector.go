package engine

import (
	"errors"
	"math/rand"
)

// Difficulty tunes how the automated opponent picks among candidates.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty normalizes a difficulty token, defaulting to beginner.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyIntermediate:
		return DifficultyIntermediate
	case DifficultyAdvanced:
		return DifficultyAdvanced
	default:
		return DifficultyBeginner
	}
}

// ErrNoLegalMoves is returned when the automated side has nothing to play.
// The session layer treats it as game over (capture-the-king rules have no
// separate stalemate).
var ErrNoLegalMoves = errors.New("no legal moves")

// SelectMove picks the automated opponent's move from candidates, which must
// be in generation order.
//
//   - beginner: uniform over all candidates
//   - intermediate: uniform over the first min(5, N)
//   - advanced: always the first candidate
//
// "Advanced" is a deterministic simplification, not a strength-maximizing
// search.
func SelectMove(candidates []Candidate, difficulty Difficulty, rng *rand.Rand) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoLegalMoves
	}
	switch difficulty {
	case DifficultyAdvanced:
		return candidates[0], nil
	case DifficultyIntermediate:
		pool := len(candidates)
		if pool > 5 {
			pool = 5
		}
		return candidates[rng.Intn(pool)], nil
	default:
		return candidates[rng.Intn(len(candidates))], nil
	}
}
