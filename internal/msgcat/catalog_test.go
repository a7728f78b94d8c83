package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsLoad(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.Get("classify.blunder.description"); !ok {
		t.Fatalf("embedded catalog missing blunder description")
	}
}

func TestRenderHintTemplate(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Render("hint.threat", map[string]any{"Count": 2})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "2") {
		t.Fatalf("rendered hint missing count: %q", out)
	}
}

func TestRenderUnknownKey(t *testing.T) {
	c, _ := New("")
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestListFlattensRemarkPools(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, prefix := range []string{"classify.mistake.remarks", "classify.blunder.remarks"} {
		pool := c.List(prefix)
		if len(pool) != 5 {
			t.Fatalf("%s: got %d entries, want 5", prefix, len(pool))
		}
	}
	if got := c.List("no.such.pool"); len(got) != 0 {
		t.Fatalf("unknown prefix should yield empty list, got %v", got)
	}
}

func TestOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	body := "classify:\n  blunder:\n    description: \"custom blunder text\"\n"
	if err := os.WriteFile(filepath.Join(dir, "10-custom.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New with overrides: %v", err)
	}
	got, _ := c.Get("classify.blunder.description")
	if got != "custom blunder text" {
		t.Fatalf("override not applied: %q", got)
	}
}

func TestDuplicateOverrideKeysRejected(t *testing.T) {
	dir := t.TempDir()
	body := "hint:\n  center: \"dup\"\n"
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected duplicate-key error across override files")
	}
}
