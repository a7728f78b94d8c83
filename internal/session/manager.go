package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chess-coach/internal/cache"
	"github.com/park285/chess-coach/internal/coach"
	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/msgcat"
	"github.com/park285/chess-coach/internal/obslog"
	"github.com/park285/chess-coach/internal/store"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrGameOver          = errors.New("game is over")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotFinished       = errors.New("session not finished")
	ErrInvalidAllotment  = errors.New("invalid time allotment")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrSessionLimit      = errors.New("session limit reached")
)

// Publisher receives session events for fan-out to live feed subscribers.
// Implementations must not block.
type Publisher interface {
	Publish(sessionID string, event Event)
}

// Event is one live-feed item.
type Event struct {
	Type      string             `json:"type"` // move | bot_move | game_over | reset
	SessionID string             `json:"session_id"`
	Record    *engine.MoveRecord `json:"record,omitempty"`
	Hints     []string           `json:"hints,omitempty"`
	Status    Status             `json:"status"`
	Turn      engine.Color       `json:"turn"`
	Winner    engine.Color       `json:"winner,omitempty"`
	EndReason string             `json:"end_reason,omitempty"`
}

// Config tunes manager timing; zero values take the defaults.
type Config struct {
	BotDelay    time.Duration // delay before the automated reply, default 500ms
	ClockTick   time.Duration // game clock resolution, default 1s
	MaxSessions int           // cap on concurrent live sessions, default 200
}

type liveSession struct {
	snap       GameSession
	botGen     int // bumped to cancel a pending bot reply
	botTimer   *time.Timer
	clockStop  chan struct{}
	aggregated bool
	stats      *coach.SessionStats
}

// Manager owns all live sessions. All state transitions happen under one
// mutex; the bot timer and clock goroutines re-enter through it, so a bump
// of botGen before unlocking is enough to cancel a pending reply.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*liveSession

	mover *Mover
	agg   *coach.Aggregator
	cat   *msgcat.Catalog
	repo  store.Repository // optional
	snaps *cache.Cache     // optional
	feed  Publisher        // optional
	rng   *rand.Rand

	botDelay    time.Duration
	clockTick   time.Duration
	maxSessions int
}

// NewManager wires the session manager. repo, snaps and feed may be nil;
// the manager then runs purely in memory.
func NewManager(cat *msgcat.Catalog, repo store.Repository, snaps *cache.Cache, feed Publisher, rng *rand.Rand, cfg Config) *Manager {
	if cfg.BotDelay <= 0 {
		cfg.BotDelay = 500 * time.Millisecond
	}
	if cfg.ClockTick <= 0 {
		cfg.ClockTick = time.Second
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 200
	}
	return &Manager{
		sessions:    make(map[string]*liveSession),
		mover:       NewMover(coach.BuildDeck(cat), rng),
		agg:         coach.NewAggregator(cat),
		cat:         cat,
		repo:        repo,
		snaps:       snaps,
		feed:        feed,
		rng:         rng,
		botDelay:    cfg.BotDelay,
		clockTick:   cfg.ClockTick,
		maxSessions: cfg.MaxSessions,
	}
}

// Create starts a session. The human always plays white in vs_bot mode.
func (m *Manager) Create(ctx context.Context, mode Mode, difficulty engine.Difficulty, allotment time.Duration) (GameSession, error) {
	if !ValidAllotment(allotment) {
		return GameSession{}, ErrInvalidAllotment
	}
	switch difficulty {
	case engine.DifficultyBeginner, engine.DifficultyIntermediate, engine.DifficultyAdvanced:
	default:
		return GameSession{}, ErrInvalidDifficulty
	}
	now := time.Now()
	snap := GameSession{
		ID:          uuid.NewString(),
		Mode:        mode,
		Difficulty:  difficulty,
		PlayerColor: engine.White,
		Board:       engine.NewBoard(),
		Turn:        engine.White,
		Status:      StatusActive,
		WhiteClock:  allotment,
		BlackClock:  allotment,
		Allotment:   allotment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ls := &liveSession{snap: snap, clockStop: make(chan struct{})}

	m.mu.Lock()
	if len(m.sessions) >= m.maxSessions {
		m.mu.Unlock()
		return GameSession{}, ErrSessionLimit
	}
	m.sessions[snap.ID] = ls
	m.mu.Unlock()

	go m.runClock(snap.ID, ls.clockStop)
	go m.cacheSnapshot(snap)

	obslog.L().Info("session_create",
		zap.String("session_id", snap.ID),
		zap.String("mode", string(mode)),
		zap.String("difficulty", string(difficulty)),
		zap.Duration("allotment", allotment),
	)
	return snap, nil
}

// Get returns the current snapshot.
func (m *Manager) Get(_ context.Context, id string) (GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return GameSession{}, ErrSessionNotFound
	}
	return ls.snap, nil
}

// PlayMove applies the human move. An illegal request returns the unchanged
// snapshot with Applied=false and no error; hints accompany a legal move.
func (m *Manager) PlayMove(_ context.Context, id string, from, to engine.Square) (GameSession, MoveOutcome, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return GameSession{}, MoveOutcome{}, nil, ErrSessionNotFound
	}
	if !ls.snap.Active() {
		return ls.snap, MoveOutcome{}, nil, ErrGameOver
	}
	if bot := ls.snap.BotColor(); bot != "" && ls.snap.Turn == bot {
		return ls.snap, MoveOutcome{}, nil, ErrNotYourTurn
	}

	next, out := m.mover.ApplyMove(ls.snap, from, to)
	if !out.Applied {
		// rejected-but-silent: selection cleared upstream, board untouched
		return ls.snap, out, nil, nil
	}
	ls.snap = next

	hints := coach.RenderHints(m.cat, out.Hints)
	obslog.L().Info("session_move",
		zap.String("session_id", id),
		zap.String("notation", out.Record.Notation),
		zap.String("tier", string(out.Record.Classification.Tier)),
		zap.Float64("eval", out.Record.Evaluation),
		zap.String("status", string(next.Status)),
	)

	m.publish(id, Event{
		Type: "move", SessionID: id, Record: &out.Record, Hints: hints,
		Status: next.Status, Turn: next.Turn,
		Winner: next.Winner, EndReason: next.EndReason,
	})
	if out.Over {
		m.finishLocked(id, ls, next.Status, next.EndReason, next.Winner)
	} else if bot := next.BotColor(); bot != "" && next.Turn == bot {
		m.scheduleBotLocked(id, ls)
	}
	go m.cacheSnapshot(ls.snap)
	return ls.snap, out, hints, nil
}

// Hints derives live hints for the side to move.
func (m *Manager) Hints(_ context.Context, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	raw := engine.DeriveHints(ls.snap.Board, ls.snap.Turn, len(ls.snap.History))
	return coach.RenderHints(m.cat, raw), nil
}

// Export renders the session transcript.
func (m *Manager) Export(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	return Transcript(ls.snap, m.text("export.event"), m.text("export.white_default"), m.text("export.black_default")), nil
}

// Resign concedes the game for color.
func (m *Manager) Resign(_ context.Context, id string, color engine.Color) (GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return GameSession{}, ErrSessionNotFound
	}
	if !ls.snap.Active() {
		return ls.snap, ErrGameOver
	}
	m.finishLocked(id, ls, StatusResigned, EndResignation, color.Opponent())
	obslog.L().Info("session_resign",
		zap.String("session_id", id),
		zap.String("resigner", string(color)),
		zap.String("winner", string(ls.snap.Winner)),
	)
	return ls.snap, nil
}

// Report returns the coaching report once the session has finished.
func (m *Manager) Report(_ context.Context, id string) (*coach.SessionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !ls.aggregated || ls.stats == nil {
		return nil, ErrNotFinished
	}
	cp := *ls.stats
	return &cp, nil
}

// Reset replaces the session wholesale: fresh board, cleared history,
// restored clocks. A pending bot reply is cancelled before the new board
// exists.
func (m *Manager) Reset(_ context.Context, id string) (GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return GameSession{}, ErrSessionNotFound
	}
	m.cancelBotLocked(ls)

	old := ls.snap
	now := time.Now()
	ls.snap = GameSession{
		ID:          old.ID,
		Mode:        old.Mode,
		Difficulty:  old.Difficulty,
		PlayerColor: old.PlayerColor,
		Board:       engine.NewBoard(),
		Turn:        engine.White,
		Status:      StatusActive,
		WhiteClock:  old.Allotment,
		BlackClock:  old.Allotment,
		Allotment:   old.Allotment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ls.aggregated = false
	ls.stats = nil

	m.publish(id, Event{Type: "reset", SessionID: id, Status: StatusActive, Turn: engine.White})
	go m.cacheSnapshot(ls.snap)
	obslog.L().Info("session_reset", zap.String("session_id", id))
	return ls.snap, nil
}

// Remove drops a session and stops its clock.
func (m *Manager) Remove(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return
	}
	m.cancelBotLocked(ls)
	close(ls.clockStop)
	delete(m.sessions, id)
	if m.snaps != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = m.snaps.Delete(ctx, cache.SessionKey(id))
		}()
	}
}

// Close stops all session clocks and pending bot replies.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ls := range m.sessions {
		m.cancelBotLocked(ls)
		close(ls.clockStop)
		delete(m.sessions, id)
	}
}

// --- automated opponent ---

func (m *Manager) scheduleBotLocked(id string, ls *liveSession) {
	m.cancelBotLocked(ls)
	gen := ls.botGen
	ls.botTimer = time.AfterFunc(m.botDelay, func() { m.botMove(id, gen) })
}

func (m *Manager) cancelBotLocked(ls *liveSession) {
	ls.botGen++
	if ls.botTimer != nil {
		ls.botTimer.Stop()
		ls.botTimer = nil
	}
}

func (m *Manager) botMove(id string, gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok || gen != ls.botGen || !ls.snap.Active() {
		return // cancelled or superseded
	}
	bot := ls.snap.BotColor()
	if bot == "" || ls.snap.Turn != bot {
		return
	}

	candidates := engine.GenerateMoves(ls.snap.Board, bot)
	pick, err := engine.SelectMove(candidates, ls.snap.Difficulty, m.rng)
	if err != nil {
		// no legal reply: the automated side loses on the spot
		m.finishLocked(id, ls, StatusFinished, EndNoLegalMoves, bot.Opponent())
		return
	}

	next, out := m.mover.ApplyMove(ls.snap, pick.From, pick.To)
	if !out.Applied {
		obslog.L().Error("bot_move_rejected",
			zap.String("session_id", id),
			zap.String("notation", pick.Notation),
		)
		return
	}
	ls.snap = next

	hints := coach.RenderHints(m.cat, out.Hints)
	obslog.L().Info("session_bot_move",
		zap.String("session_id", id),
		zap.String("notation", out.Record.Notation),
		zap.String("tier", string(out.Record.Classification.Tier)),
		zap.String("status", string(next.Status)),
	)
	m.publish(id, Event{
		Type: "bot_move", SessionID: id, Record: &out.Record, Hints: hints,
		Status: next.Status, Turn: next.Turn,
		Winner: next.Winner, EndReason: next.EndReason,
	})
	if out.Over {
		m.finishLocked(id, ls, next.Status, next.EndReason, next.Winner)
	}
	go m.cacheSnapshot(ls.snap)
}

// --- game clock ---

func (m *Manager) runClock(id string, stop <-chan struct{}) {
	ticker := time.NewTicker(m.clockTick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick(id)
		}
	}
}

func (m *Manager) tick(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok || !ls.snap.Active() {
		return
	}
	side := ls.snap.Turn
	remaining := ls.snap.ClockFor(side) - m.clockTick
	if remaining < 0 {
		remaining = 0
	}
	if side == engine.White {
		ls.snap.WhiteClock = remaining
	} else {
		ls.snap.BlackClock = remaining
	}
	if remaining == 0 {
		m.finishLocked(id, ls, StatusTimeout, EndTimeout, side.Opponent())
		obslog.L().Info("session_timeout",
			zap.String("session_id", id),
			zap.String("flagged", string(side)),
		)
	}
}

// --- termination ---

// finishLocked marks the session finished, cancels any pending bot reply,
// aggregates exactly once and kicks off persistence.
func (m *Manager) finishLocked(id string, ls *liveSession, status Status, reason string, winner engine.Color) {
	setFinished(&ls.snap, status, reason, winner)
	m.cancelBotLocked(ls)

	if !ls.aggregated {
		stats := m.agg.Aggregate(
			ls.snap.History, ls.snap.Board, ls.snap.PlayerColor,
			ls.snap.ClockFor(ls.snap.PlayerColor), ls.snap.Allotment, m.rng,
		)
		ls.stats = &stats
		ls.aggregated = true
		go m.persist(ls.snap, stats)
	}

	m.publish(id, Event{
		Type: "game_over", SessionID: id,
		Status: ls.snap.Status, Turn: ls.snap.Turn,
		Winner: winner, EndReason: reason,
	})
}

func setFinished(s *GameSession, status Status, reason string, winner engine.Color) {
	if s.Status == StatusActive {
		s.Status = status
		s.EndReason = reason
		s.Winner = winner
		s.UpdatedAt = time.Now()
	}
}

func (m *Manager) persist(snap GameSession, stats coach.SessionStats) {
	if m.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	moves, _ := json.Marshal(snap.History)
	duration := snap.UpdatedAt.Sub(snap.CreatedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	rec := &store.GameRecord{
		ID:          snap.ID,
		Mode:        string(snap.Mode),
		Difficulty:  string(snap.Difficulty),
		PlayerColor: string(snap.PlayerColor),
		Result:      string(snap.Winner),
		EndReason:   snap.EndReason,
		Moves:       moves,
		Accuracy:    stats.Accuracy,
		Brilliant:   stats.BrilliantCount,
		Mistakes:    stats.MistakeCount,
		Blunders:    stats.BlunderCount,
		StartedAt:   snap.CreatedAt,
		EndedAt:     snap.UpdatedAt,
		DurationMS:  duration,
	}
	if err := m.repo.SaveGame(ctx, rec); err != nil {
		obslog.L().Error("session_persist_error", zap.String("session_id", snap.ID), zap.Error(err))
		return
	}
	raw, _ := json.Marshal(stats)
	if err := m.repo.SaveReport(ctx, snap.ID, raw); err != nil {
		obslog.L().Error("report_persist_error", zap.String("session_id", snap.ID), zap.Error(err))
		return
	}
	obslog.L().Info("session_persist",
		zap.String("session_id", snap.ID),
		zap.String("result", string(snap.Winner)),
		zap.String("end_reason", snap.EndReason),
	)
}

// --- side effects ---

func (m *Manager) publish(id string, ev Event) {
	if m.feed != nil {
		m.feed.Publish(id, ev)
	}
}

func (m *Manager) cacheSnapshot(snap GameSession) {
	if m.snaps == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.snaps.SetJSON(ctx, cache.SessionKey(snap.ID), snap); err != nil {
		obslog.L().Warn("session_cache_error", zap.String("session_id", snap.ID), zap.Error(err))
	}
}

func (m *Manager) text(key string) string {
	v, _ := m.cat.Get(key)
	return v
}
