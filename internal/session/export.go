package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/park285/chess-coach/internal/engine"
)

// Transcript renders the finished (or in-progress) session as text: a
// header block followed by numbered move pairs. Moves use the engine's
// notation strings; even plies pair under the white move's number.
func Transcript(s GameSession, event, whiteName, blackName string) string {
	var b strings.Builder
	date := s.UpdatedAt
	if date.IsZero() {
		date = time.Now()
	}
	b.WriteString(fmt.Sprintf("[Event %q]\n", sanitizeHeader(event)))
	b.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day()))
	b.WriteString(fmt.Sprintf("[White %q]\n", sanitizeHeader(whiteName)))
	b.WriteString(fmt.Sprintf("[Black %q]\n", sanitizeHeader(blackName)))
	b.WriteString(fmt.Sprintf("[TimeControl \"%d\"]\n", int(s.Allotment.Seconds())))
	if s.EndReason != "" {
		b.WriteString(fmt.Sprintf("[Termination %q]\n", s.EndReason))
	}
	b.WriteString(fmt.Sprintf("[Result %q]\n\n", resultToken(s)))

	for i := 0; i < len(s.History); i += 2 {
		turn := (i / 2) + 1
		b.WriteString(fmt.Sprintf("%d. %s", turn, s.History[i].Notation))
		if i+1 < len(s.History) {
			b.WriteString(" ")
			b.WriteString(s.History[i+1].Notation)
		}
		b.WriteString(" ")
	}
	b.WriteString(resultToken(s))
	return b.String()
}

func resultToken(s GameSession) string {
	switch s.Winner {
	case engine.White:
		return "1-0"
	case engine.Black:
		return "0-1"
	default:
		return "*"
	}
}

func sanitizeHeader(v string) string {
	v = strings.ReplaceAll(v, "\\", " ")
	v = strings.ReplaceAll(v, "\"", "'")
	return strings.TrimSpace(v)
}
