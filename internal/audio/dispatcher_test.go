package audio

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSample(t *testing.T, root, switchName, key string) {
	t.Helper()
	dir := filepath.Join(root, switchName, "press")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, key+".mp3"), []byte(key), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
}

func TestNewScansSwitchDirectories(t *testing.T) {
	root := t.TempDir()
	writeSample(t, root, "blue", "A")
	writeSample(t, root, "blue", "SPACE")
	writeSample(t, root, "brown", "GENERIC")
	// A switch without a press dir is skipped.
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	d := New(root)
	switches := d.AvailableSwitches()
	if len(switches) != 2 || switches[0] != "blue" || switches[1] != "brown" {
		t.Fatalf("switches = %v, want [blue brown]", switches)
	}
	if len(d.assets["blue"]) != 2 {
		t.Fatalf("blue samples = %d, want 2", len(d.assets["blue"]))
	}
}

func TestNewMissingRoot(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(d.AvailableSwitches()) != 0 {
		t.Fatalf("expected empty dispatcher")
	}
	// Still fully functional: requests are accepted and dropped.
	d.PlayFor("blue", "A")
}

func TestResolveFallbackOrder(t *testing.T) {
	d := &Dispatcher{assets: map[string]map[string][]byte{
		"blue": {
			"A":          []byte("a"),
			"GENERIC":    []byte("g"),
			"GENERIC_R0": []byte("r0"),
		},
		"red": {
			"GENERIC_R1": []byte("r1"),
			"GENERIC_R3": []byte("r3"),
		},
	}}
	rnd := rand.New(rand.NewSource(1))

	if data, ok := d.resolve("blue", "A", rnd); !ok || string(data) != "a" {
		t.Fatalf("exact match: got %q, %v", data, ok)
	}
	if data, ok := d.resolve("blue", "ENTER", rnd); !ok || string(data) != "g" {
		t.Fatalf("generic fallback: got %q, %v", data, ok)
	}
	data, ok := d.resolve("red", "ENTER", rnd)
	if !ok {
		t.Fatalf("variant fallback failed")
	}
	if s := string(data); s != "r1" && s != "r3" {
		t.Fatalf("variant fallback picked %q", s)
	}
	if _, ok := d.resolve("unknown-switch", "A", rnd); ok {
		t.Fatalf("unknown switch must not resolve")
	}
}

func TestPlayForUnknownSwitchReturnsImmediately(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing"))
	done := make(chan struct{})
	go func() {
		d.PlayFor("unknown-switch", "A")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("PlayFor blocked")
	}
	d.Close()
	// Close is idempotent.
	d.Close()
	// Requests after Close are dropped without panicking.
	d.PlayFor("unknown-switch", "A")
}
