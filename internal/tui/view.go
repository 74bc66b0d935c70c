package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typist/internal/metrics"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/session"
	"github.com/verte-zerg/typist/internal/stats"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	zenStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

var tabModes = []model.Mode{model.ModeTime, model.ModeWords, model.ModeZen}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	var body string
	if m.screen == screenFinished {
		body = m.renderFinished()
	} else {
		body = m.renderTyping()
	}
	footer := m.renderFooter()

	if m.width == 0 || m.height == 0 {
		return header + "\n\n" + body + "\n\n" + footer
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(body)
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	headerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, header)
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return headerLine + "\n" + placed + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	segments := make([]string, 0, len(tabModes)+2)
	for i, mode := range tabModes {
		label := fmt.Sprintf("%d:%s", i+1, mode)
		if mode == m.mode {
			segments = append(segments, activeTabStyle.Render(label))
		} else {
			segments = append(segments, tabStyle.Render(label))
		}
	}
	if options := session.Options(m.mode); len(options) > 0 {
		parts := make([]string, 0, len(options))
		for i, opt := range options {
			s := fmt.Sprintf("%d", opt)
			if i == m.optionIdx[m.mode] {
				s = activeTabStyle.Render(s)
			} else {
				s = tabStyle.Render(s)
			}
			parts = append(parts, s)
		}
		segments = append(segments, strings.Join(parts, " "))
	}
	if m.capsWarningActive() {
		segments = append(segments, warningStyle.Render("CAPS"))
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderTyping() string {
	if m.mode == model.ModeZen {
		text := m.sess.FreeText()
		if text == "" {
			return pendingStyle.Render("Start typing...")
		}
		return zenStyle.Render(text) + pendingStyle.Underline(true).Render(" ")
	}
	target := []rune(m.sess.Target())
	if len(target) == 0 {
		return ""
	}
	styled := buildStyledRunes(target, m.sess.Status(), m.sess.Corrected(), m.sess.Cursor())
	if m.width == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	return wrapStyledRunes(styled, contentWidth)
}

func (m *Model) renderFinished() string {
	if m.lastResult == nil {
		return ""
	}
	r := m.lastResult
	lines := []string{
		fmt.Sprintf("WPM %.1f", r.WPM),
		fmt.Sprintf("Accuracy %.1f%%", r.Accuracy),
		fmt.Sprintf("Correct %d  Incorrect %d", r.CorrectChars, r.IncorrectChars),
		fmt.Sprintf("Duration %.1fs", float64(r.DurationMs)/1000),
	}
	if len(r.Samples) > 1 {
		lines = append(lines, "", stats.Sparkline(stats.SampleValues(r.Samples)))
	}
	if m.saveErr != nil {
		lines = append(lines, "", warningStyle.Render("attempt not saved"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	switch m.screen {
	case screenView:
		return footerStyle.Render("1/2/3 mode  ←/→ option  enter start  ctrl+c quit")
	case screenInsert:
		segments := []string{}
		if m.sess.Started() {
			segments = append(segments, fmt.Sprintf("%.1f WPM", metrics.Live(m.sess)))
			segments = append(segments, m.renderProgress())
		}
		if m.sess.Locked() {
			segments = append(segments, warningStyle.Render("paused: type the expected key"))
		}
		segments = append(segments, "esc back")
		return footerStyle.Render(strings.Join(segments, "  "))
	default:
		return footerStyle.Render("enter again  q quit")
	}
}

func (m *Model) renderProgress() string {
	switch m.mode {
	case model.ModeTime:
		remaining := int64(m.currentValue()) - int64(m.sess.ElapsedSecs())
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%ds left", remaining)
	case model.ModeWords:
		return fmt.Sprintf("%d/%d words", m.sess.TypedWords(), m.currentValue())
	default:
		return fmt.Sprintf("%ds", m.sess.ElapsedSecs())
	}
}
