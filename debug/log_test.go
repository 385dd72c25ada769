package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	if err := EnableAt(path); err != nil {
		t.Fatalf("enable: %v", err)
	}
	defer Disable()

	Log("strip", "frame %d sent", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "frame 7 sent") || !strings.Contains(out, "cat=strip") {
		t.Fatalf("unexpected log contents:\n%s", out)
	}
}

func TestLogEveryThrottles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := EnableAt(path); err != nil {
		t.Fatalf("enable: %v", err)
	}
	defer Disable()

	for i := 0; i < 7; i++ {
		LogEvery(3, "render", "tick")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "cat=render"); n != 2 {
		t.Fatalf("expected 2 throttled lines, got %d:\n%s", n, data)
	}
}

func TestLogDisabledIsNoop(t *testing.T) {
	Disable()
	if Enabled() {
		t.Fatal("expected logging to be disabled")
	}
	Log("midi", "dropped %d", 1)
}
