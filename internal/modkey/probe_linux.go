//go:build linux

package modkey

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const sysLEDDir = "/sys/class/leds"

func platformProbes() []prober {
	return []prober{
		swayProbe{},
		xsetProbe{},
		sysfsProbe{dir: sysLEDDir},
	}
}

// swayProbe asks the sway compositor for input state over its IPC tool.
type swayProbe struct{}

func (swayProbe) Available() bool {
	_, err := exec.LookPath("swaymsg")
	return err == nil
}

func (swayProbe) Read() (bool, bool) {
	out, err := exec.Command("swaymsg", "-t", "get_inputs").Output()
	if err != nil {
		return false, false
	}
	return parseSwayInputs(string(out)), true
}

func parseSwayInputs(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "caps_lock") && strings.Contains(lower, "true")
}

// xsetProbe reads the X11 keyboard state via `xset q`.
type xsetProbe struct{}

func (xsetProbe) Available() bool {
	_, err := exec.LookPath("xset")
	return err == nil
}

func (xsetProbe) Read() (bool, bool) {
	out, err := exec.Command("xset", "q").Output()
	if err != nil {
		return false, false
	}
	return parseXsetQuery(string(out))
}

// parseXsetQuery understands both the textual "Caps Lock: on" indicator
// and the LED mask, whose second bit is the caps LED on most setups.
func parseXsetQuery(out string) (on, ok bool) {
	lower := strings.ToLower(out)
	if idx := strings.Index(lower, "caps lock:"); idx >= 0 {
		rest := strings.TrimSpace(lower[idx+len("caps lock:"):])
		return strings.HasPrefix(rest, "on"), true
	}
	idx := strings.Index(lower, "led mask")
	if idx < 0 {
		return false, false
	}
	tail := lower[idx:]
	colon := strings.IndexByte(tail, ':')
	if colon < 0 {
		return false, false
	}
	fields := strings.Fields(tail[colon+1:])
	if len(fields) == 0 {
		return false, false
	}
	mask, err := parseLEDMask(fields[0])
	if err != nil {
		return false, false
	}
	return mask&0x02 != 0, true
}

func parseLEDMask(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// sysfsProbe reads the kernel LED class entries for a caps LED.
type sysfsProbe struct {
	dir string
}

func (p sysfsProbe) Available() bool {
	_, err := os.Stat(p.dir)
	return err == nil
}

func (p sysfsProbe) Read() (bool, bool) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return false, false
	}
	found := false
	for _, entry := range entries {
		if !strings.Contains(strings.ToLower(entry.Name()), "caps") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.dir, entry.Name(), "brightness"))
		if err != nil {
			continue
		}
		found = true
		val, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err == nil && val > 0 {
			return true, true
		}
	}
	if found {
		return false, true
	}
	return false, false
}
