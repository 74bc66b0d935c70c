// Package metrics derives speed and accuracy figures from session counters.
package metrics

import (
	"time"

	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/session"
)

// NetWPM computes net words per minute: error keystrokes cancel correct
// ones, one word is five characters, and the result never goes negative.
func NetWPM(correct, incorrect int, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	net := correct - incorrect
	if net < 0 {
		net = 0
	}
	return float64(net) / 5.0 / minutes
}

// Accuracy returns the percentage of correct keystrokes. An untouched
// attempt reads as 100%.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 100
	}
	return 100 * float64(correct) / float64(total)
}

// Sampler records at most one WPM snapshot per elapsed second of an
// attempt. A missed second is never backfilled; the recorded sequence is
// strictly increasing in elapsed time. Second zero is never sampled.
type Sampler struct {
	lastSec uint64
}

// Observe decides whether the given elapsed second is due for a sample
// and, if so, returns it. Seconds at or below the last recorded value are
// refused.
func (sp *Sampler) Observe(sec uint64, wpm float64) (model.Sample, bool) {
	if sec <= sp.lastSec {
		return model.Sample{}, false
	}
	sp.lastSec = sec
	return model.Sample{ElapsedS: sec, WPM: wpm}, true
}

// Record appends a live WPM sample to the session when its elapsed second
// has not been recorded yet. It reports whether a sample was appended.
func (sp *Sampler) Record(s *session.Session) bool {
	if !s.Started() {
		return false
	}
	sample, ok := sp.Observe(s.ElapsedSecs(), Live(s))
	if !ok {
		return false
	}
	s.AppendSample(sample)
	return true
}

// Live returns the net WPM for the running attempt, computed over the
// effective elapsed time (wall time plus current idle span), which drags
// the displayed speed down while the typist is paused.
func Live(s *session.Session) float64 {
	minutes := s.EffectiveDuration().Minutes()
	return NetWPM(s.CorrectChars(), s.IncorrectChars(), minutes)
}

// Final returns the WPM and accuracy for a finished attempt of the given
// wall-clock duration.
func Final(correct, incorrect int, duration time.Duration) (wpm, accuracy float64) {
	return NetWPM(correct, incorrect, duration.Minutes()), Accuracy(correct, incorrect)
}
