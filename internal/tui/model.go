// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typist/internal/audio"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/metrics"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/modkey"
	"github.com/verte-zerg/typist/internal/session"
	"github.com/verte-zerg/typist/internal/store"
)

type screen int

const (
	screenView screen = iota
	screenInsert
	screenFinished
)

const (
	tickInterval  = 200 * time.Millisecond
	timeModeWords = 120
)

type tickMsg time.Time

// Model implements the Bubble Tea practice UI.
type Model struct {
	config     model.Config
	store      *store.Store
	gen        *generator.Generator
	words      []string
	punctSet   []rune
	dispatcher *audio.Dispatcher
	monitor    *modkey.Monitor

	width  int
	height int

	screen    screen
	mode      model.Mode
	optionIdx map[model.Mode]int

	sess    *session.Session
	sampler *metrics.Sampler

	lastResult *model.AttemptResult
	saveErr    error
}

// NewModel constructs the practice model. The dispatcher and monitor may be
// nil when audio or modifier detection is unavailable.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, words []string, punctSet []rune, dispatcher *audio.Dispatcher, monitor *modkey.Monitor) *Model {
	m := &Model{
		config:     cfg,
		store:      st,
		gen:        gen,
		words:      words,
		punctSet:   punctSet,
		dispatcher: dispatcher,
		monitor:    monitor,
		mode:       cfg.Mode,
		optionIdx:  map[model.Mode]int{},
	}
	for _, mode := range []model.Mode{model.ModeTime, model.ModeWords} {
		m.optionIdx[mode] = optionIndexFor(mode, cfg.Value)
	}
	m.resetAttempt()
	return m
}

func optionIndexFor(mode model.Mode, value int) int {
	for i, opt := range session.Options(mode) {
		if opt == value {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.onTick()
		return m, tickCmd()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenView:
			return m.updateView(msg)
		case screenInsert:
			return m.updateInsert(msg)
		case screenFinished:
			return m.updateFinished(msg)
		}
	}
	return m, nil
}

func (m *Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.switchMode(model.ModeTime)
	case "2":
		m.switchMode(model.ModeWords)
	case "3":
		m.switchMode(model.ModeZen)
	case "left", "h":
		m.cycleOption(-1)
	case "right", "l":
		m.cycleOption(1)
	case "enter", "i":
		m.screen = screenInsert
	}
	return m, nil
}

func (m *Model) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == model.ModeZen && m.sess.Started() {
			m.finishAttempt()
			return m, nil
		}
		m.resetAttempt()
		m.screen = screenView
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Backspace()
		m.playKey(msg)
		return m, nil
	case tea.KeySpace:
		m.onRune(' ')
		m.playKey(msg)
		return m, nil
	case tea.KeyEnter:
		if m.mode == model.ModeZen {
			m.onRune('\n')
			m.playKey(msg)
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.onRune(r)
		}
		m.playKey(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.resetAttempt()
		m.screen = screenView
	}
	return m, nil
}

func (m *Model) onRune(r rune) {
	if !m.sess.Started() {
		m.sess.Start()
	}
	m.sess.OnKey(r)
	if m.sess.Done() {
		m.finishAttempt()
	}
}

func (m *Model) onTick() {
	if m.screen != screenInsert || !m.sess.Started() {
		return
	}
	m.sampler.Record(m.sess)
	if m.mode == model.ModeTime && m.sess.ElapsedSecs() >= uint64(m.currentValue()) {
		m.finishAttempt()
	}
}

func (m *Model) playKey(msg tea.KeyMsg) {
	if m.dispatcher == nil || !m.config.AudioEnabled {
		return
	}
	label := keyLabel(msg)
	if label == "" {
		return
	}
	m.dispatcher.PlayFor(m.config.Switch, label)
}

func (m *Model) switchMode(mode model.Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.resetAttempt()
}

func (m *Model) cycleOption(delta int) {
	options := session.Options(m.mode)
	if len(options) == 0 {
		return
	}
	idx := (m.optionIdx[m.mode] + delta + len(options)) % len(options)
	m.optionIdx[m.mode] = idx
	m.resetAttempt()
}

func (m *Model) currentValue() int {
	options := session.Options(m.mode)
	if len(options) == 0 {
		return 0
	}
	return options[m.optionIdx[m.mode]]
}

func (m *Model) resetAttempt() {
	m.sess = session.New(m.generateTarget(), m.mode)
	m.sampler = &metrics.Sampler{}
	m.saveErr = nil
}

func (m *Model) generateTarget() string {
	switch m.mode {
	case model.ModeZen:
		return ""
	case model.ModeTime:
		return m.gen.Sentence(m.words, timeModeWords, m.config.CapsPct, m.config.PunctPct, m.punctSet)
	default:
		return m.gen.Sentence(m.words, m.currentValue(), m.config.CapsPct, m.config.PunctPct, m.punctSet)
	}
}

func (m *Model) finishAttempt() {
	endedAt := time.Now()
	startedAt := m.sess.StartedAt()
	duration := endedAt.Sub(startedAt)
	wpm, accuracy := metrics.Final(m.sess.CorrectChars(), m.sess.IncorrectChars(), duration)

	target := m.sess.Target()
	if m.mode == model.ModeZen {
		target = m.sess.FreeText()
	}
	result := model.AttemptResult{
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		Mode:           m.mode,
		Target:         target,
		TargetValue:    m.currentValue(),
		CorrectChars:   m.sess.CorrectChars(),
		IncorrectChars: m.sess.IncorrectChars(),
		WPM:            wpm,
		Accuracy:       accuracy,
		DurationMs:     duration.Milliseconds(),
		Samples:        m.sess.Samples(),
	}
	m.lastResult = &result
	m.saveErr = nil
	if m.store != nil {
		if _, err := m.store.InsertAttempt(context.Background(), result); err != nil {
			m.saveErr = err
			logErrf("failed to save attempt: %v\n", err)
		}
	}
	m.screen = screenFinished
}

func (m *Model) capsWarningActive() bool {
	if m.monitor == nil || !m.monitor.DetectionAvailable() {
		return false
	}
	return m.monitor.CachedIsModifierOn()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
