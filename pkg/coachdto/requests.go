package coachdto

// StartSessionRequest creates a new coaching session.
type StartSessionRequest struct {
	Mode          string `json:"mode"`           // vs_bot | local
	Difficulty    string `json:"difficulty"`     // beginner | intermediate | advanced
	TimeAllotment int    `json:"time_allotment"` // seconds: 300, 600, 900 or 1800
}

// MoveRequest plays one move. Squares use file+rank notation ("e2").
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ResignRequest concedes for the given color; empty means white.
type ResignRequest struct {
	Color string `json:"color,omitempty"`
}

// GameSummary is one persisted game in history listings.
type GameSummary struct {
	GameID     string  `json:"game_id"`
	Mode       string  `json:"mode"`
	Difficulty string  `json:"difficulty"`
	Result     string  `json:"result"`
	EndReason  string  `json:"end_reason"`
	Accuracy   float64 `json:"accuracy"`
	Brilliant  int     `json:"brilliant"`
	Mistakes   int     `json:"mistakes"`
	Blunders   int     `json:"blunders"`
	DurationMS int64   `json:"duration_ms"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
