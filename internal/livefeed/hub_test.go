package livefeed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chess-coach/internal/session"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	url := strings.Replace(srv.URL, "http", "ws", 1) + "/ws/sessions/abc"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// let the server-side subscription register
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		n := len(hub.subs["abc"])
		hub.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish("abc", session.Event{Type: "move", SessionID: "abc", Status: session.StatusActive})

	var got session.Event
	if err := wsjson.Read(ctx, conn, &got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "move" || got.SessionID != "abc" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestPublishToOtherSessionIsFiltered(t *testing.T) {
	hub := NewHub()
	sub := hub.subscribe("one")
	defer hub.unsubscribe("one", sub)

	hub.Publish("two", session.Event{Type: "move", SessionID: "two"})
	select {
	case ev := <-sub.ch:
		t.Fatalf("received event for another session: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	sub := hub.subscribe("s")
	defer hub.unsubscribe("s", sub)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish("s", session.Event{Type: "move", SessionID: "s"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a full subscriber")
	}
}

func TestUnsubscribeRemovesEmptySet(t *testing.T) {
	hub := NewHub()
	sub := hub.subscribe("x")
	hub.unsubscribe("x", sub)
	hub.mu.RLock()
	_, ok := hub.subs["x"]
	hub.mu.RUnlock()
	if ok {
		t.Fatalf("empty subscriber set not cleaned up")
	}
}
