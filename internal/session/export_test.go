package session

import (
	"strings"
	"testing"
	"time"

	"github.com/park285/chess-coach/internal/engine"
)

func TestTranscriptPairsAndHeaders(t *testing.T) {
	s := newTestSession()
	s.UpdatedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.History = []engine.MoveRecord{
		{Notation: "e2-e4", Mover: engine.White},
		{Notation: "e7-e5", Mover: engine.Black},
		{Notation: "Kg1-f3", Mover: engine.White},
	}

	out := Transcript(s, "Coaching Session", "White", "Black")

	for _, want := range []string{
		"[Event \"Coaching Session\"]",
		"[Date \"2026.03.14\"]",
		"[White \"White\"]",
		"[Black \"Black\"]",
		"[TimeControl \"600\"]",
		"1. e2-e4 e7-e5",
		"2. Kg1-f3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "*") {
		t.Fatalf("unfinished game must end with *, got:\n%s", out)
	}
}

func TestTranscriptResultAndTermination(t *testing.T) {
	s := newTestSession()
	s.Status = StatusFinished
	s.Winner = engine.Black
	s.EndReason = EndKingCapture

	out := Transcript(s, "Coaching Session", "White", "Black")
	if !strings.Contains(out, "[Result \"0-1\"]") {
		t.Fatalf("missing black-win result:\n%s", out)
	}
	if !strings.Contains(out, "[Termination \"king_capture\"]") {
		t.Fatalf("missing termination header:\n%s", out)
	}
	if !strings.HasSuffix(out, "0-1") {
		t.Fatalf("transcript must end with the result token")
	}
}

func TestTranscriptSanitizesNames(t *testing.T) {
	s := newTestSession()
	out := Transcript(s, "Coaching Session", `Alice "The Rook"`, "Bob")
	if strings.Contains(out, `"The Rook"`) {
		t.Fatalf("quotes must be sanitized in headers:\n%s", out)
	}
}
