package metrics

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNetWPM(t *testing.T) {
	cases := []struct {
		name               string
		correct, incorrect int
		minutes            float64
		want               float64
	}{
		{"steady minute", 250, 0, 1, 50},
		{"errors cancel", 250, 50, 1, 40},
		{"never negative", 10, 20, 1, 0},
		{"zero minutes", 100, 0, 0, 0},
		{"half minute", 100, 0, 0.5, 40},
	}
	for _, tc := range cases {
		if got := NetWPM(tc.correct, tc.incorrect, tc.minutes); !almostEqual(got, tc.want) {
			t.Errorf("%s: NetWPM = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); !almostEqual(got, 100) {
		t.Fatalf("untouched accuracy = %v, want 100", got)
	}
	if got := Accuracy(3, 1); !almostEqual(got, 75) {
		t.Fatalf("accuracy = %v, want 75", got)
	}
	if got := Accuracy(0, 5); !almostEqual(got, 0) {
		t.Fatalf("accuracy = %v, want 0", got)
	}
}

func TestSamplerMonotonic(t *testing.T) {
	var sp Sampler
	seconds := []uint64{0, 1, 1, 2, 2, 2, 5, 4, 6}
	var recorded []uint64
	for _, sec := range seconds {
		if sample, ok := sp.Observe(sec, 42); ok {
			recorded = append(recorded, sample.ElapsedS)
		}
	}
	want := []uint64{1, 2, 5, 6}
	if len(recorded) != len(want) {
		t.Fatalf("recorded %v, want %v", recorded, want)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("recorded %v, want %v", recorded, want)
		}
	}
	for i := 1; i < len(recorded); i++ {
		if recorded[i] <= recorded[i-1] {
			t.Fatalf("sample seconds not strictly increasing: %v", recorded)
		}
	}
}

func TestSamplerSkipsSecondZero(t *testing.T) {
	var sp Sampler
	if _, ok := sp.Observe(0, 10); ok {
		t.Fatalf("second zero must not be sampled")
	}
	if _, ok := sp.Observe(1, 10); !ok {
		t.Fatalf("second one should be sampled")
	}
}

func TestFinal(t *testing.T) {
	wpm, acc := Final(250, 0, time.Minute)
	if !almostEqual(wpm, 50) || !almostEqual(acc, 100) {
		t.Fatalf("Final = (%v, %v), want (50, 100)", wpm, acc)
	}
	wpm, acc = Final(0, 0, 0)
	if !almostEqual(wpm, 0) || !almostEqual(acc, 100) {
		t.Fatalf("Final on empty attempt = (%v, %v), want (0, 100)", wpm, acc)
	}
}
