// Package session implements the keystroke state machine for one typing attempt.
package session

import (
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

// Status is the typing state of a single target character.
type Status int

// Per-character states.
const (
	Untyped Status = iota
	Correct
	Incorrect
)

// idleLockAfter is the idle time since the last correct keystroke after
// which incorrect input is rejected until the expected character is typed.
const idleLockAfter = time.Second

var (
	timeOptions = []int{15, 30, 60, 100}
	wordOptions = []int{10, 25, 50, 100}
)

// Session tracks one typing attempt against an immutable target text.
// It is owned by a single goroutine; none of its methods are safe for
// concurrent use and none of them can fail.
type Session struct {
	target []rune
	mode   model.Mode

	status    []Status
	corrected []bool

	correctChars   int
	incorrectChars int
	correctAt      []time.Time
	incorrectAt    []time.Time

	started     bool
	startedAt   time.Time
	lastInput   time.Time
	lastCorrect time.Time
	locked      bool

	freeText []rune

	samples []model.Sample

	now func() time.Time
}

// New allocates a session for the given target text. The timer stays
// unarmed until Start is called.
func New(target string, mode model.Mode) *Session {
	runes := []rune(target)
	s := &Session{
		target:    runes,
		mode:      mode,
		status:    make([]Status, len(runes)),
		corrected: make([]bool, len(runes)),
		now:       time.Now,
	}
	now := s.now()
	s.lastInput = now
	s.lastCorrect = now
	return s
}

// Start arms the attempt timer and clears any stale lock.
func (s *Session) Start() {
	if s.started {
		return
	}
	now := s.now()
	s.started = true
	s.startedAt = now
	s.lastCorrect = now
	s.locked = false
}

// OnKey processes one typed character.
//
// In zen mode every character is accepted into the free-text buffer. In the
// matched modes the character is compared against the first untyped target
// position; while the idle lock is engaged only the expected character is
// accepted, anything else is a silent no-op.
func (s *Session) OnKey(ch rune) {
	now := s.now()
	s.lastInput = now

	if s.mode == model.ModeZen {
		s.freeText = append(s.freeText, ch)
		s.correctChars++
		s.lastCorrect = now
		return
	}

	// Engage the lock before the gate so the first keystroke after an idle
	// pause is already subject to it.
	if s.started && now.Sub(s.lastCorrect) >= idleLockAfter {
		s.locked = true
	}

	if s.locked {
		i := s.Cursor()
		if i >= 0 {
			if ch != s.target[i] {
				return
			}
			s.locked = false
		}
	}

	if i := s.Cursor(); i >= 0 {
		if ch == s.target[i] {
			s.status[i] = Correct
			s.correctChars++
			s.correctAt = append(s.correctAt, now)
			s.lastCorrect = now
		} else {
			s.status[i] = Incorrect
			s.incorrectChars++
			s.incorrectAt = append(s.incorrectAt, now)
			// Sticky mistake history; a later correct retry does not clear it.
			s.corrected[i] = true
		}
	}

	// Re-arm the idle guard for the next keystroke.
	if s.started && now.Sub(s.lastCorrect) >= idleLockAfter {
		s.locked = true
	}
}

// Backspace undoes the most recent typed character. It is a no-op when
// nothing has been typed.
func (s *Session) Backspace() {
	s.lastInput = s.now()

	if s.mode == model.ModeZen {
		if len(s.freeText) == 0 {
			return
		}
		s.freeText = s.freeText[:len(s.freeText)-1]
		if s.correctChars > 0 {
			s.correctChars--
		}
		return
	}

	for i := len(s.status) - 1; i >= 0; i-- {
		if s.status[i] == Untyped {
			continue
		}
		switch s.status[i] {
		case Correct:
			if s.correctChars > 0 {
				s.correctChars--
			}
			if n := len(s.correctAt); n > 0 {
				s.correctAt = s.correctAt[:n-1]
			}
		case Incorrect:
			if s.incorrectChars > 0 {
				s.incorrectChars--
			}
		}
		s.status[i] = Untyped
		s.locked = false
		return
	}
}

// Cursor returns the first untyped position, or -1 when the target is
// fully typed.
func (s *Session) Cursor() int {
	for i, st := range s.status {
		if st == Untyped {
			return i
		}
	}
	return -1
}

// Done reports whether every target position has been typed. Zen attempts
// never complete on their own.
func (s *Session) Done() bool {
	if s.mode == model.ModeZen {
		return false
	}
	return s.Cursor() == -1
}

// ElapsedSecs returns whole seconds since Start, or 0 before typing begins.
func (s *Session) ElapsedSecs() uint64 {
	if !s.started {
		return 0
	}
	elapsed := s.now().Sub(s.startedAt)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / time.Second)
}

// EffectiveDuration is the elapsed time used for the live speed display:
// wall time since Start plus the current idle span since the last
// keystroke, which deflates displayed WPM while the typist is paused.
func (s *Session) EffectiveDuration() time.Duration {
	if !s.started {
		return 0
	}
	now := s.now()
	return now.Sub(s.startedAt) + now.Sub(s.lastInput)
}

// CurrentOptions returns the target-size choices for the session's mode.
func (s *Session) CurrentOptions() []int {
	return Options(s.mode)
}

// Options returns the target-size choices for a practice mode.
func Options(mode model.Mode) []int {
	switch mode {
	case model.ModeTime:
		return timeOptions
	case model.ModeWords:
		return wordOptions
	default:
		return nil
	}
}

// TypedWords counts whole words in the typed prefix of the target.
func (s *Session) TypedWords() int {
	end := s.Cursor()
	if end == -1 {
		end = len(s.target)
	}
	words := 0
	inWord := false
	for _, r := range s.target[:end] {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}
	return words
}

// AppendSample records a WPM snapshot for this attempt.
func (s *Session) AppendSample(sample model.Sample) {
	s.samples = append(s.samples, sample)
}

// Target returns the target text.
func (s *Session) Target() string { return string(s.target) }

// Mode returns the practice variant the session was created with.
func (s *Session) Mode() model.Mode { return s.mode }

// Status exposes the per-character states for rendering. Callers must not
// modify the returned slice.
func (s *Session) Status() []Status { return s.status }

// Corrected exposes the sticky per-character mistake flags. Callers must
// not modify the returned slice.
func (s *Session) Corrected() []bool { return s.corrected }

// CorrectChars returns the number of correct keystrokes still standing.
func (s *Session) CorrectChars() int { return s.correctChars }

// IncorrectChars returns the number of incorrect keystrokes still standing.
func (s *Session) IncorrectChars() int { return s.incorrectChars }

// CorrectTimes returns the timestamps of standing correct keystrokes.
func (s *Session) CorrectTimes() []time.Time { return s.correctAt }

// IncorrectTimes returns the timestamps of recorded incorrect keystrokes.
func (s *Session) IncorrectTimes() []time.Time { return s.incorrectAt }

// Started reports whether the attempt timer is armed.
func (s *Session) Started() bool { return s.started }

// StartedAt returns the attempt start time; zero before Start.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Locked reports whether the idle lock is currently engaged.
func (s *Session) Locked() bool { return s.locked }

// FreeText returns the zen-mode buffer.
func (s *Session) FreeText() string { return string(s.freeText) }

// Samples returns the recorded WPM snapshots in order.
func (s *Session) Samples() []model.Sample { return s.samples }
