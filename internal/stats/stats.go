// Package stats contains reporting over stored typing attempts.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typist/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates stored attempts for display.
type Summary struct {
	Attempts    int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	TotalTime   int64
}

// Summarize computes the summary over the attempts.
func Summarize(attempts []model.AttemptAggregate) Summary {
	s := Summary{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return s
	}
	for _, a := range attempts {
		s.AvgWPM += a.WPM
		s.AvgAccuracy += a.Accuracy
		s.TotalTime += a.DurationMs
		if a.WPM > s.BestWPM {
			s.BestWPM = a.WPM
		}
	}
	count := float64(len(attempts))
	s.AvgWPM /= count
	s.AvgAccuracy /= count
	return s
}

// RenderSummary prints a summary block for attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptAggregate) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	s := Summarize(attempts)
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", s.Attempts),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Total Time: %.1fs", float64(s.TotalTime)/1000),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints a table of recent attempts, newest last.
func RenderHistory(w io.Writer, attempts []model.AttemptAggregate) error {
	if len(attempts) == 0 {
		return nil
	}
	headers := []string{"Ended", "Mode", "WPM", "Accuracy", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		rows = append(rows, []string{
			a.EndedAt.Format("2006-01-02 15:04"),
			a.Mode,
			fmt.Sprintf("%.1f", a.WPM),
			fmt.Sprintf("%.1f%%", a.Accuracy),
			fmt.Sprintf("%d", a.Correct),
			fmt.Sprintf("%d", a.Incorrect),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WPMValues extracts the WPM series from attempt aggregates.
func WPMValues(attempts []model.AttemptAggregate) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		out[i] = a.WPM
	}
	return out
}

// SampleValues extracts the WPM series from an attempt's samples.
func SampleValues(samples []model.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.WPM
	}
	return out
}
