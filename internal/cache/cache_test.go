package cache

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	c, err := New(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSetGetRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		ID   string `json:"id"`
		Turn string `json:"turn"`
	}
	in := payload{ID: "abc", Turn: "white"}
	if err := c.SetJSON(ctx, SessionKey("abc"), in); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var out payload
	found, err := c.GetJSON(ctx, SessionKey("abc"), &out)
	if err != nil || !found {
		t.Fatalf("GetJSON: found=%v err=%v", found, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache(t)
	var out map[string]any
	found, err := c.GetJSON(context.Background(), SessionKey("nope"), &out)
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if found {
		t.Fatalf("missing key reported as found")
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	if err := c.SetJSON(ctx, SessionKey("x"), map[string]string{"a": "b"}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := c.Delete(ctx, SessionKey("x")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var out map[string]string
	if found, _ := c.GetJSON(ctx, SessionKey("x"), &out); found {
		t.Fatalf("deleted key still present")
	}
}

func TestRejectsBadURL(t *testing.T) {
	if _, err := New("http://localhost:6379"); err == nil {
		t.Fatalf("expected scheme error")
	}
	if _, err := New(""); err == nil {
		t.Fatalf("expected empty-url error")
	}
}
