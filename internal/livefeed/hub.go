package livefeed

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chess-coach/internal/obslog"
	"github.com/park285/chess-coach/internal/session"
)

const subscriberBuffer = 16

// Hub fans session events out to websocket subscribers. It implements
// session.Publisher; Publish never blocks — a subscriber that cannot keep
// up loses events rather than stalling the session manager.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	ch chan session.Event
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Publish delivers ev to every subscriber of sessionID.
func (h *Hub) Publish(sessionID string, ev session.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[sessionID] {
		select {
		case sub.ch <- ev:
		default:
			// slow consumer, drop
		}
	}
}

func (h *Hub) subscribe(sessionID string) *subscriber {
	sub := &subscriber{ch: make(chan session.Event, subscriberBuffer)}
	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*subscriber]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sessionID string, sub *subscriber) {
	h.mu.Lock()
	if set := h.subs[sessionID]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sessionID)
		}
	}
	h.mu.Unlock()
}

// Handler serves GET /ws/sessions/{id}.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/sessions/", h.handleWS)
	return mux
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/ws/sessions/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "session id required", http.StatusBadRequest)
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		obslog.L().Warn("livefeed_accept_error", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	sub := h.subscribe(id)
	defer h.unsubscribe(id, sub)
	obslog.L().Info("livefeed_subscribe", zap.String("session_id", id))

	// drains incoming frames; the returned ctx ends when the peer goes away
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case ev := <-sub.ch:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(wctx, conn, ev)
			cancel()
			if err != nil {
				obslog.L().Warn("livefeed_write_error", zap.String("session_id", id), zap.Error(err))
				return
			}
		}
	}
}
