package httpapi

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chess-coach/internal/engine"
	"github.com/park285/chess-coach/internal/obslog"
	"github.com/park285/chess-coach/internal/session"
	"github.com/park285/chess-coach/internal/store"
	"github.com/park285/chess-coach/pkg/coachdto"
)

// Server is the REST surface over the session manager and game store.
type Server struct {
	mgr     *session.Manager
	repo    store.Repository // optional
	started time.Time
}

// NewServer wires the API. repo may be nil; history endpoints then return
// 503.
func NewServer(mgr *session.Manager, repo store.Repository) *Server {
	return &Server{mgr: mgr, repo: repo, started: time.Now()}
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	defer func() {
		if r := recover(); r != nil {
			obslog.L().Error("http_panic", zap.Any("panic", r), zap.String("path", path))
			s.writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
		}
	}()

	switch {
	case path == "/api/health" && method == fasthttp.MethodGet:
		s.handleHealth(ctx)
	case path == "/api/sessions" && method == fasthttp.MethodPost:
		s.handleCreateSession(ctx)
	case strings.HasPrefix(path, "/api/sessions/"):
		s.routeSession(ctx, strings.TrimPrefix(path, "/api/sessions/"), method)
	case path == "/api/games" && method == fasthttp.MethodGet:
		s.handleListGames(ctx)
	case strings.HasPrefix(path, "/api/games/") && method == fasthttp.MethodGet:
		s.routeGame(ctx, strings.TrimPrefix(path, "/api/games/"))
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) routeSession(ctx *fasthttp.RequestCtx, rest, method string) {
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "session id required")
		return
	}
	switch {
	case action == "" && method == fasthttp.MethodGet:
		s.handleGetSession(ctx, id)
	case action == "moves" && method == fasthttp.MethodPost:
		s.handleMove(ctx, id)
	case action == "hints" && method == fasthttp.MethodGet:
		s.handleHints(ctx, id)
	case action == "export" && method == fasthttp.MethodGet:
		s.handleExport(ctx, id)
	case action == "resign" && method == fasthttp.MethodPost:
		s.handleResign(ctx, id)
	case action == "reset" && method == fasthttp.MethodPost:
		s.handleReset(ctx, id)
	case action == "report" && method == fasthttp.MethodGet:
		s.handleReport(ctx, id)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) routeGame(ctx *fasthttp.RequestCtx, rest string) {
	id, action, _ := strings.Cut(rest, "/")
	switch action {
	case "":
		s.handleGetGame(ctx, id)
	case "report":
		s.handleGameReport(ctx, id)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status":     "ok",
		"store":      s.repo != nil,
		"uptime_sec": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleCreateSession(ctx *fasthttp.RequestCtx) {
	var req coachdto.StartSessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid json")
		return
	}
	snap, err := s.mgr.Create(ctx,
		session.ParseMode(req.Mode),
		engine.ParseDifficulty(req.Difficulty),
		time.Duration(req.TimeAllotment)*time.Second,
	)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusCreated, toState(snap))
}

func (s *Server) handleGetSession(ctx *fasthttp.RequestCtx, id string) {
	snap, err := s.mgr.Get(ctx, id)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, toState(snap))
}

func (s *Server) handleMove(ctx *fasthttp.RequestCtx, id string) {
	var req coachdto.MoveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid json")
		return
	}
	from, err := parseSquare(req.From)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	to, err := parseSquare(req.To)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	snap, out, hints, err := s.mgr.PlayMove(ctx, id, from, to)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	summary := &coachdto.MoveSummary{
		Applied:  out.Applied,
		State:    toState(snap),
		Hints:    hints,
		Finished: out.Over,
	}
	if out.Applied {
		mv := toMoveView(out.Record)
		summary.Move = &mv
	}
	s.writeJSON(ctx, fasthttp.StatusOK, summary)
}

func (s *Server) handleHints(ctx *fasthttp.RequestCtx, id string) {
	hints, err := s.mgr.Hints(ctx, id)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"hints": hints})
}

func (s *Server) handleExport(ctx *fasthttp.RequestCtx, id string) {
	text, err := s.mgr.Export(ctx, id)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(text)
}

func (s *Server) handleResign(ctx *fasthttp.RequestCtx, id string) {
	var req coachdto.ResignRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "invalid json")
			return
		}
	}
	color := engine.White
	if engine.Color(req.Color) == engine.Black {
		color = engine.Black
	}
	snap, err := s.mgr.Resign(ctx, id, color)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, toState(snap))
}

func (s *Server) handleReset(ctx *fasthttp.RequestCtx, id string) {
	snap, err := s.mgr.Reset(ctx, id)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, toState(snap))
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx, id string) {
	stats, err := s.mgr.Report(ctx, id)
	if err != nil {
		s.writeManagerError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, stats)
}

func (s *Server) handleListGames(ctx *fasthttp.RequestCtx) {
	if s.repo == nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "store not configured")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
	games, err := s.repo.ListGames(ctx, limit)
	if err != nil {
		obslog.L().Error("list_games_error", zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "store error")
		return
	}
	out := make([]coachdto.GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, toGameSummary(g))
	}
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"games": out})
}

func (s *Server) handleGetGame(ctx *fasthttp.RequestCtx, id string) {
	if s.repo == nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "store not configured")
		return
	}
	g, err := s.repo.GetGame(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(ctx, fasthttp.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		obslog.L().Error("get_game_error", zap.String("game_id", id), zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "store error")
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, toGameSummary(g))
}

func (s *Server) handleGameReport(ctx *fasthttp.RequestCtx, id string) {
	if s.repo == nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "store not configured")
		return
	}
	raw, err := s.repo.GetReport(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(ctx, fasthttp.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		obslog.L().Error("get_report_error", zap.String("game_id", id), zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "store error")
		return
	}
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(raw)
}

func (s *Server) writeManagerError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		s.writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrGameOver), errors.Is(err, session.ErrNotYourTurn):
		s.writeError(ctx, fasthttp.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNotFinished):
		s.writeError(ctx, fasthttp.StatusConflict, err.Error())
	case errors.Is(err, session.ErrInvalidAllotment), errors.Is(err, session.ErrInvalidDifficulty):
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrSessionLimit):
		s.writeError(ctx, fasthttp.StatusTooManyRequests, err.Error())
	default:
		obslog.L().Error("session_manager_error", zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "encode error")
		return
	}
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBody(raw)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	raw, _ := json.Marshal(coachdto.ErrorResponse{Error: msg})
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBody(raw)
}
