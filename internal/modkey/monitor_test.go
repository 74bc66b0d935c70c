package modkey

import (
	"sync/atomic"
	"testing"
	"time"
)

type fakeProbe struct {
	available bool
	on        bool
	ok        bool
	reads     atomic.Int64
}

func (p *fakeProbe) Available() bool { return p.available }

func (p *fakeProbe) Read() (bool, bool) {
	p.reads.Add(1)
	return p.on, p.ok
}

func newTestMonitor(probes ...prober) *Monitor {
	return &Monitor{probes: probes, quit: make(chan struct{})}
}

func TestIsModifierOnFirstDefinitiveWins(t *testing.T) {
	failing := &fakeProbe{ok: false, on: true}
	definitive := &fakeProbe{ok: true, on: true}
	ignored := &fakeProbe{ok: true, on: false}
	m := newTestMonitor(failing, definitive, ignored)

	if !m.IsModifierOn() {
		t.Fatalf("expected true from the first definitive probe")
	}
	if ignored.reads.Load() != 0 {
		t.Fatalf("later probes must not be consulted after a definitive answer")
	}
}

func TestIsModifierOnAllProbesFail(t *testing.T) {
	m := newTestMonitor(&fakeProbe{}, &fakeProbe{})
	if m.IsModifierOn() {
		t.Fatalf("expected false when no probe answers")
	}
}

func TestIsModifierOnNoProbes(t *testing.T) {
	m := newTestMonitor()
	if m.IsModifierOn() {
		t.Fatalf("expected false with no probes")
	}
	if m.DetectionAvailable() {
		t.Fatalf("expected no detection with no probes")
	}
}

func TestDetectionAvailable(t *testing.T) {
	m := newTestMonitor(&fakeProbe{available: false}, &fakeProbe{available: true})
	if !m.DetectionAvailable() {
		t.Fatalf("expected detection to be available")
	}
}

func TestCachedReadWithoutPollerProbesSynchronously(t *testing.T) {
	p := &fakeProbe{ok: true, on: true}
	m := newTestMonitor(p)
	if !m.CachedIsModifierOn() {
		t.Fatalf("expected synchronous probe result")
	}
	if p.reads.Load() != 1 {
		t.Fatalf("reads = %d, want 1", p.reads.Load())
	}
}

func TestStartPollingIsIdempotent(t *testing.T) {
	p := &fakeProbe{ok: true, on: true}
	m := newTestMonitor(p)
	defer m.StopPolling()

	m.StartPolling(10 * time.Millisecond)
	m.StartPolling(10 * time.Millisecond)

	if !m.polling.Load() {
		t.Fatalf("expected poller to be running")
	}
	// The cache is primed immediately on start.
	if !m.CachedIsModifierOn() {
		t.Fatalf("expected primed cache to read true")
	}
}

func TestPollerRefreshesCache(t *testing.T) {
	p := &fakeProbe{ok: true, on: false}
	m := newTestMonitor(p)
	defer m.StopPolling()

	m.StartPolling(5 * time.Millisecond)
	p.on = true

	deadline := time.After(time.Second)
	for !m.CachedIsModifierOn() {
		select {
		case <-deadline:
			t.Fatalf("cache never refreshed")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStopPollingFallsBackToSynchronous(t *testing.T) {
	p := &fakeProbe{ok: true, on: true}
	m := newTestMonitor(p)
	m.StartPolling(time.Hour)
	m.StopPolling()

	before := p.reads.Load()
	if !m.CachedIsModifierOn() {
		t.Fatalf("expected synchronous read after stop")
	}
	if p.reads.Load() == before {
		t.Fatalf("expected a fresh probe read after stop")
	}
	// Polling cannot be restarted after stop.
	m.StartPolling(time.Millisecond)
	if m.polling.Load() {
		t.Fatalf("poller restarted after stop")
	}
}
