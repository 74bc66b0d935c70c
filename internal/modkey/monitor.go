// Package modkey provides best-effort detection of a latched keyboard
// modifier (caps lock) across platforms.
package modkey

import (
	"sync/atomic"
	"time"
)

// prober is one OS-specific way to read the modifier state. Read returns
// ok=false when the probe cannot produce a definitive answer, in which
// case the next probe in line is consulted.
type prober interface {
	// Available cheaply reports whether the probe could work on this
	// system. Success here does not guarantee every later Read succeeds.
	Available() bool
	Read() (on, ok bool)
}

// Monitor answers modifier-state queries by trying an ordered list of
// platform probes, first definitive answer wins. An optional background
// poller keeps a cached answer fresh so per-frame reads stay cheap.
type Monitor struct {
	probes []prober

	cache   atomic.Bool
	polling atomic.Bool
	stopped atomic.Bool
	quit    chan struct{}
}

// NewMonitor builds a monitor with the probes for the current platform.
func NewMonitor() *Monitor {
	return &Monitor{
		probes: platformProbes(),
		quit:   make(chan struct{}),
	}
}

// IsModifierOn performs one synchronous probe scan. Platforms without a
// working probe report false.
func (m *Monitor) IsModifierOn() bool {
	for _, p := range m.probes {
		if on, ok := p.Read(); ok {
			return on
		}
	}
	return false
}

// DetectionAvailable reports whether at least one system-backed probe
// exists, so callers can decide if polling is worthwhile.
func (m *Monitor) DetectionAvailable() bool {
	for _, p := range m.probes {
		if p.Available() {
			return true
		}
	}
	return false
}

// StartPolling spawns at most one background goroutine that refreshes the
// cached state every interval. Calling it again while a poller runs, or
// after StopPolling, is a no-op.
func (m *Monitor) StartPolling(interval time.Duration) {
	if interval <= 0 || m.stopped.Load() {
		return
	}
	if !m.polling.CompareAndSwap(false, true) {
		return
	}
	m.cache.Store(m.IsModifierOn())
	go m.poll(interval)
}

// StopPolling stops the background poller. Subsequent cached reads fall
// back to synchronous probing.
func (m *Monitor) StopPolling() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.quit)
	}
	m.polling.Store(false)
}

// CachedIsModifierOn reads the poller's cache when a poller is running
// and probes synchronously otherwise.
func (m *Monitor) CachedIsModifierOn() bool {
	if m.polling.Load() {
		return m.cache.Load()
	}
	return m.IsModifierOn()
}

func (m *Monitor) poll(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			m.cache.Store(m.IsModifierOn())
		}
	}
}
