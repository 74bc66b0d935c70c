// Package main provides the CLI entrypoint for typist.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typist/internal/audio"
	"github.com/verte-zerg/typist/internal/config"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/modkey"
	"github.com/verte-zerg/typist/internal/stats"
	"github.com/verte-zerg/typist/internal/statsui"
	"github.com/verte-zerg/typist/internal/store"
	"github.com/verte-zerg/typist/internal/tui"
	"github.com/verte-zerg/typist/internal/wordlist"
)

const (
	defaultLang   = "en"
	defaultCaps   = 0.0
	defaultPunct  = 0.0
	defaultValue  = 30
	defaultSwitch = "cherry_mx_blue"
	defaultLayout = "qwerty"

	modkeyPollInterval = 500 * time.Millisecond
)

const defaultPunctSet = ".,!?;:\"'{}()[]-=/<>`"

var (
	practiceLang     string
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string
	practiceMode     string
	practiceValue    int
	practiceSwitch   string
	practiceAudio    bool
	practiceLayout   string

	statsMode    string
	statsSince   string
	statsLast    int
	statsSummary bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typist",
		Short:         "TUI typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "language code (default: en)")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().StringVar(&practiceMode, "mode", "time", "practice mode (time, words or zen)")
	rootCmd.Flags().IntVar(&practiceValue, "value", defaultValue, "seconds for time mode, count for words mode")
	rootCmd.Flags().StringVar(&practiceSwitch, "switch", defaultSwitch, "keystroke sound switch")
	rootCmd.Flags().BoolVar(&practiceAudio, "audio", true, "play keystroke sounds")
	rootCmd.Flags().StringVar(&practiceLayout, "layout", defaultLayout, "keyboard layout name")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSwitchesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "value", &practiceValue, fileCfg.Practice.Value)
	applyStringConfig(cmd, "switch", &practiceSwitch, fileCfg.Audio.Switch)
	applyBoolConfig(cmd, "audio", &practiceAudio, fileCfg.Audio.Enabled)
	applyStringConfig(cmd, "layout", &practiceLayout, fileCfg.Keyboard.Layout)

	mode, err := parseMode(practiceMode)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Lang:         practiceLang,
		CapsPct:      practiceCaps,
		PunctPct:     practicePunct,
		PunctSet:     practicePunctSet,
		Mode:         mode,
		Value:        practiceValue,
		Switch:       practiceSwitch,
		AudioEnabled: practiceAudio,
		Layout:       practiceLayout,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	wordsList := wordlist.LoadWordsOrDefault(config.DefaultWordListPath(cfg.Lang))

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var dispatcher *audio.Dispatcher
	if cfg.AudioEnabled {
		dispatcher = audio.New(config.DefaultAudioRoot())
		defer dispatcher.Close()
	}

	monitor := modkey.NewMonitor()
	if monitor.DetectionAvailable() {
		monitor.StartPolling(modkeyPollInterval)
		defer monitor.StopPolling()
	}

	gen := generator.New()
	tuiModel := tui.NewModel(cfg, st, gen, wordsList, []rune(cfg.PunctSet), dispatcher, monitor)
	program := tea.NewProgram(tuiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (time, words or zen)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().BoolVar(&statsSummary, "summary", false, "print a plain summary instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	switch statsMode {
	case "", "time", "words", "zen":
	default:
		return fmt.Errorf("invalid --mode value (use time, words or zen)")
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Mode:  statsMode,
		Since: sinceTime,
		Last:  statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsSummary {
		return printStatsSummary(cmd, st, cfg)
	}

	statsModel := statsui.NewModel(st, cfg)
	program := tea.NewProgram(statsModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printStatsSummary(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	attempts, err := st.ListAttempts(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load attempts: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, attempts); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := stats.RenderHistory(out, attempts); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if len(attempts) > 1 {
		if err := stats.PlotWPM(out, "WPM per attempt", stats.WPMValues(attempts), 0, 0); err != nil {
			return fmt.Errorf("failed to write plot: %w", err)
		}
	}
	return nil
}

func newSwitchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switches",
		Short: "List installed keystroke sound switches",
		Args:  cobra.NoArgs,
		RunE:  runSwitchesCmd,
	}
}

func runSwitchesCmd(cmd *cobra.Command, _ []string) error {
	root := config.DefaultAudioRoot()
	dispatcher := audio.New(root)
	defer dispatcher.Close()
	switches := dispatcher.AvailableSwitches()
	if len(switches) == 0 {
		logErrf("No switch samples found under %s\n", root)
		return fmt.Errorf("no switches found")
	}
	for _, name := range switches {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func parseMode(s string) (model.Mode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "time":
		return model.ModeTime, nil
	case "words":
		return model.ModeWords, nil
	case "zen":
		return model.ModeZen, nil
	default:
		return 0, fmt.Errorf("invalid --mode value %q (use time, words or zen)", s)
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.Value <= 0 {
		return fmt.Errorf("--value must be > 0")
	}
	if cfg.Switch == "" {
		return fmt.Errorf("--switch must not be empty")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typist configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q              # Language code
# caps = %.2f            # Probability of capitalized first letter (0-1)
# punct = %.2f           # Punctuation probability per word (0-1)
# punct-set = %q         # Punctuation set
# mode = "time"          # Practice mode: time, words or zen
# value = %d             # Seconds for time mode, count for words mode

[audio]
# switch = %q            # Keystroke sound switch
# enabled = true         # Play keystroke sounds

[keyboard]
# layout = %q            # Keyboard layout name
`,
		defaultLang,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultValue,
		defaultSwitch,
		defaultLayout,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
