//go:build !linux && !windows

package modkey

// No system-backed probe exists on this platform; the monitor degrades to
// a constant false with DetectionAvailable reporting the gap.
func platformProbes() []prober {
	return nil
}
