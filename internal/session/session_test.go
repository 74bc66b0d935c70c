package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

// fakeClock returns a clock function that can be advanced by tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1700000000, 0)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(target string, mode model.Mode) (*Session, *fakeClock) {
	clock := newFakeClock()
	s := New(target, mode)
	s.now = clock.now
	s.lastInput = clock.now()
	s.lastCorrect = clock.now()
	return s, clock
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	if len(s.status) != len(s.corrected) || len(s.status) != len(s.target) {
		t.Fatalf("status/corrected/target lengths diverged: %d/%d/%d",
			len(s.status), len(s.corrected), len(s.target))
	}
	typed := 0
	for _, st := range s.status {
		if st != Untyped {
			typed++
		}
	}
	if s.correctChars+s.incorrectChars != typed {
		t.Fatalf("counter invariant broken: correct=%d incorrect=%d typed=%d",
			s.correctChars, s.incorrectChars, typed)
	}
}

func TestAllCorrect(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeWords)
	s.Start()
	for _, ch := range "cat" {
		clock.advance(100 * time.Millisecond)
		s.OnKey(ch)
		checkInvariants(t, s)
	}
	for i, st := range s.Status() {
		if st != Correct {
			t.Fatalf("status[%d] = %v, want Correct", i, st)
		}
	}
	if s.CorrectChars() != 3 || s.IncorrectChars() != 0 {
		t.Fatalf("counters = %d/%d, want 3/0", s.CorrectChars(), s.IncorrectChars())
	}
	if !s.Done() {
		t.Fatalf("expected session to be done")
	}
	if len(s.CorrectTimes()) != 3 {
		t.Fatalf("expected 3 correct timestamps, got %d", len(s.CorrectTimes()))
	}
}

func TestIncorrectSetsStickyCorrected(t *testing.T) {
	s, _ := newTestSession("cat", model.ModeWords)
	s.Start()
	s.OnKey('x')
	checkInvariants(t, s)

	want := []Status{Incorrect, Untyped, Untyped}
	for i, st := range s.Status() {
		if st != want[i] {
			t.Fatalf("status[%d] = %v, want %v", i, st, want[i])
		}
	}
	if got := s.Corrected(); !got[0] || got[1] || got[2] {
		t.Fatalf("corrected = %v, want [true false false]", got)
	}
	if s.IncorrectChars() != 1 {
		t.Fatalf("incorrect = %d, want 1", s.IncorrectChars())
	}

	// Backspace reverts status but not the sticky flag.
	s.Backspace()
	checkInvariants(t, s)
	for i, st := range s.Status() {
		if st != Untyped {
			t.Fatalf("status[%d] = %v after backspace, want Untyped", i, st)
		}
	}
	if s.IncorrectChars() != 0 {
		t.Fatalf("incorrect = %d after backspace, want 0", s.IncorrectChars())
	}
	if got := s.Corrected(); !got[0] || got[1] || got[2] {
		t.Fatalf("corrected = %v after backspace, want [true false false]", got)
	}

	// A correct retry at the same position leaves the flag set too.
	s.OnKey('c')
	if got := s.Corrected(); !got[0] {
		t.Fatalf("corrected[0] cleared by correct retry")
	}
}

func TestBackspaceRestoresCounters(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeWords)
	s.Start()
	s.OnKey('c')
	clock.advance(50 * time.Millisecond)

	correct, incorrect := s.CorrectChars(), s.IncorrectChars()
	stamps := len(s.CorrectTimes())
	s.OnKey('a')
	s.Backspace()
	checkInvariants(t, s)
	if s.CorrectChars() != correct || s.IncorrectChars() != incorrect {
		t.Fatalf("counters = %d/%d, want %d/%d",
			s.CorrectChars(), s.IncorrectChars(), correct, incorrect)
	}
	if len(s.CorrectTimes()) != stamps {
		t.Fatalf("correct timestamps = %d, want %d", len(s.CorrectTimes()), stamps)
	}
}

func TestBackspaceOnEmptyIsNoop(t *testing.T) {
	s, _ := newTestSession("cat", model.ModeWords)
	s.Backspace()
	checkInvariants(t, s)
	if s.CorrectChars() != 0 || s.IncorrectChars() != 0 {
		t.Fatalf("counters changed by empty backspace")
	}
}

func TestIdleLockRejectsIncorrect(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeWords)
	s.Start()
	s.OnKey('c')
	checkInvariants(t, s)

	// Idle past the lock threshold, then a wrong key: silent no-op.
	clock.advance(1200 * time.Millisecond)
	s.OnKey('x')
	checkInvariants(t, s)
	if !s.Locked() {
		t.Fatalf("expected session to be locked after idle wrong key")
	}
	if s.IncorrectChars() != 0 {
		t.Fatalf("incorrect = %d while locked, want 0", s.IncorrectChars())
	}
	if s.Status()[1] != Untyped {
		t.Fatalf("status[1] changed while locked")
	}

	// The expected character unlocks and is accepted normally.
	s.OnKey('a')
	checkInvariants(t, s)
	if s.Locked() {
		t.Fatalf("expected unlock on correct key")
	}
	if s.Status()[1] != Correct || s.CorrectChars() != 2 {
		t.Fatalf("correct key after unlock not recorded")
	}
}

func TestBackspaceClearsLock(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeWords)
	s.Start()
	s.OnKey('c')
	clock.advance(1500 * time.Millisecond)
	s.OnKey('x') // engages the lock
	if !s.Locked() {
		t.Fatalf("expected lock after idle keystroke")
	}
	s.Backspace()
	if s.Locked() {
		t.Fatalf("expected backspace to clear the lock")
	}
}

func TestZenAcceptsEverything(t *testing.T) {
	s, _ := newTestSession("ignored", model.ModeZen)
	s.Start()
	for _, ch := range "qq!?" {
		s.OnKey(ch)
	}
	if s.FreeText() != "qq!?" {
		t.Fatalf("free text = %q, want %q", s.FreeText(), "qq!?")
	}
	if s.CorrectChars() != 4 {
		t.Fatalf("correct = %d, want 4", s.CorrectChars())
	}
	if s.Locked() {
		t.Fatalf("zen mode must never lock")
	}
	s.Backspace()
	if s.FreeText() != "qq!" || s.CorrectChars() != 3 {
		t.Fatalf("backspace: text=%q correct=%d", s.FreeText(), s.CorrectChars())
	}
	if s.Done() {
		t.Fatalf("zen attempts never complete by themselves")
	}
}

func TestElapsedSecs(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeTime)
	if s.ElapsedSecs() != 0 {
		t.Fatalf("elapsed = %d before start, want 0", s.ElapsedSecs())
	}
	s.Start()
	clock.advance(2500 * time.Millisecond)
	if s.ElapsedSecs() != 2 {
		t.Fatalf("elapsed = %d, want 2", s.ElapsedSecs())
	}
}

func TestEffectiveDurationIncludesIdle(t *testing.T) {
	s, clock := newTestSession("cat", model.ModeTime)
	s.Start()
	s.OnKey('c')
	clock.advance(3 * time.Second)
	got := s.EffectiveDuration()
	if got != 6*time.Second {
		t.Fatalf("effective duration = %v, want 6s", got)
	}
}

func TestCurrentOptions(t *testing.T) {
	cases := []struct {
		mode model.Mode
		want []int
	}{
		{model.ModeTime, []int{15, 30, 60, 100}},
		{model.ModeWords, []int{10, 25, 50, 100}},
		{model.ModeZen, nil},
	}
	for _, tc := range cases {
		s, _ := newTestSession("x", tc.mode)
		got := s.CurrentOptions()
		if len(got) != len(tc.want) {
			t.Fatalf("%v options = %v, want %v", tc.mode, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%v options = %v, want %v", tc.mode, got, tc.want)
			}
		}
	}
}

func TestTypedWords(t *testing.T) {
	s, _ := newTestSession("ab cd ef", model.ModeWords)
	s.Start()
	for _, ch := range "ab c" {
		s.OnKey(ch)
	}
	if got := s.TypedWords(); got != 2 {
		t.Fatalf("typed words = %d, want 2", got)
	}
	for _, ch := range "d ef" {
		s.OnKey(ch)
	}
	if got := s.TypedWords(); got != 3 {
		t.Fatalf("typed words = %d, want 3", got)
	}
}

func TestOverflowKeystrokesAreNoops(t *testing.T) {
	s, _ := newTestSession("ab", model.ModeWords)
	s.Start()
	s.OnKey('a')
	s.OnKey('b')
	s.OnKey('c')
	checkInvariants(t, s)
	if s.CorrectChars() != 2 || s.IncorrectChars() != 0 {
		t.Fatalf("overflow keystroke mutated counters")
	}
}
