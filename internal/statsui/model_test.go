package statsui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typist/internal/model"
)

func sampleAttempts() []model.AttemptAggregate {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.AttemptAggregate{
		{AttemptID: 1, EndedAt: base, Mode: "time", Correct: 100, Incorrect: 5, WPM: 40, Accuracy: 95.2, DurationMs: 30000},
		{AttemptID: 2, EndedAt: base.Add(time.Hour), Mode: "words", Correct: 120, Incorrect: 0, WPM: 60, Accuracy: 100, DurationMs: 24000},
	}
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter("words", "2025-06-01", "5")
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if cfg.Mode != "words" {
		t.Errorf("Mode = %q, want words", cfg.Mode)
	}
	if cfg.Since == nil || cfg.Since.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("Since = %v", cfg.Since)
	}
	if cfg.Last != 5 {
		t.Errorf("Last = %d, want 5", cfg.Last)
	}
}

func TestParseFilterEmpty(t *testing.T) {
	cfg, err := parseFilter("", "", "")
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if cfg.Mode != "" || cfg.Since != nil || cfg.Last != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseFilterErrors(t *testing.T) {
	if _, err := parseFilter("banana", "", ""); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := parseFilter("", "June 1st", ""); err == nil {
		t.Error("expected error for bad date")
	}
	if _, err := parseFilter("", "", "-3"); err == nil {
		t.Error("expected error for negative last")
	}
}

func TestBuildHistoryDataNewestFirst(t *testing.T) {
	_, rows := buildHistoryData(sampleAttempts())
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if rows[0][1] != "words" {
		t.Errorf("first row mode = %q, want the newest attempt", rows[0][1])
	}
	if rows[1][1] != "time" {
		t.Errorf("second row mode = %q, want the oldest attempt", rows[1][1])
	}
}

func TestSelectedAttemptMapsCursor(t *testing.T) {
	m := &Model{attempts: sampleAttempts()}
	m.history = buildHistoryTable(m.attempts, 80, 10)

	a, ok := m.selectedAttempt()
	if !ok {
		t.Fatal("expected an attempt at cursor 0")
	}
	if a.AttemptID != 2 {
		t.Errorf("cursor 0 attempt ID = %d, want 2 (newest)", a.AttemptID)
	}
}

func TestSelectedAttemptEmpty(t *testing.T) {
	m := &Model{}
	m.history = buildHistoryTable(nil, 80, 10)
	if _, ok := m.selectedAttempt(); ok {
		t.Fatal("expected no selection without attempts")
	}
}

func TestFilterSummary(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := filterSummary(model.StatsConfig{Mode: "zen", Since: &since, Last: 3})
	for _, want := range []string{"mode=zen", "since=2025-06-01", "last=3"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q: %s", want, got)
		}
	}
	got = filterSummary(model.StatsConfig{})
	for _, want := range []string{"mode=any", "since=any", "last=all"} {
		if !strings.Contains(got, want) {
			t.Errorf("default summary missing %q: %s", want, got)
		}
	}
}

func TestRenderOverview(t *testing.T) {
	out := renderOverview(sampleAttempts(), 80)
	for _, want := range []string{"Attempts", "Avg WPM", "WPM per attempt"} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q", want)
		}
	}
	if got := renderOverview(nil, 80); got != "No attempts found." {
		t.Errorf("empty overview = %q", got)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if lines[0] != "a  " {
		t.Errorf("line = %q, want padded", lines[0])
	}
	out = fitLines("a", 2, 3)
	if got := len(strings.Split(out, "\n")); got != 3 {
		t.Errorf("padded line count = %d, want 3", got)
	}
}
