package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/registry"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

// End reasons recorded with match results.
const (
	EndReasonCompleted = "completed"
	EndReasonQuit      = "quit"
)

// ConfigChangedMsg reports that the watched config file was written.
type ConfigChangedMsg struct {
	Path string
}

// ConfigErrorMsg reports a failure of the config watcher.
type ConfigErrorMsg struct {
	Err error
}

// GameOptions carries the optional collaborators of a GameModel.
type GameOptions struct {
	Store     *storage.Store
	Logger    *log.Logger
	Watcher   *config.Watcher
	HoldTicks int
}

// GameModel runs one game with local two-player input, high score entry
// and back-to-menu support.
type GameModel struct {
	game       registry.Game
	mode       multiplayer.MatchMode
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	watcher    *config.Watcher
	config     core.RuntimeConfig
	match      *multiplayer.Match
	inputFrame core.MultiInputFrame
	held       *HeldKeys
	keyMapper  *KeyMapper
	gameState  core.GameState
	initials   *InitialsModel

	standalone    bool // Quit the program instead of returning to a menu
	quitting      bool
	backToMenu    bool
	resultSaved   bool
	configChanged bool
	lastWave      int
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, mode multiplayer.MatchMode, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		mode:       mode,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger.With("game", game.ID()),
		watcher:    opts.Watcher,
		config:     cfg,
		match:      multiplayer.NewMatch(multiplayer.NewMatchID(), mode, game.ID()),
		inputFrame: core.NewMultiInputFrame(),
		held:       NewHeldKeys(opts.HoldTicks),
		keyMapper:  NewKeyMapper(mode.Players() > 1),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "mode", m.mode, "seed", m.config.Seed, "match", m.match.ID())

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForConfig turns the next watcher event into a message.
func waitForConfig(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.initials != nil {
			return m.updateInitials(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		m.configChanged = true
		m.logger.Info("config changed, applies on restart", "path", msg.Path)
		return m, waitForConfig(m.watcher)

	case ConfigErrorMsg:
		m.logger.Error("config watcher failed", "error", msg.Err)
		return m, waitForConfig(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	player, action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveAbandonedMatch()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionBack:
		// Esc pauses a running game and leaves a paused or finished one
		if m.gameState.GameOver || m.gameState.Paused {
			m.saveAbandonedMatch()
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		m.inputFrame.Set(core.Player1, core.ActionPause)

	case core.ActionLeft, core.ActionRight, core.ActionBrake:
		m.held.Press(player, action)
		if action == core.ActionBrake {
			m.inputFrame.Set(player, core.ActionBrake)
		}

	default:
		m.inputFrame.Set(player, action)
	}

	return m, nil
}

// updateInitials forwards keys to the high score prompt and saves on confirm.
func (m GameModel) updateInitials(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	prompt, cmd := m.initials.Update(msg)
	m.initials = &prompt
	if !prompt.Done() {
		return m, cmd
	}

	m.saveScore(prompt.Initials())
	m.initials = nil
	return m, cmd
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The layout is built for the screen, so a running game starts over
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.match = multiplayer.NewMatch(multiplayer.NewMatchID(), m.mode, m.game.ID())
		m.resultSaved = false
		m.lastWave = 0
		m.held.Reset()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Player1().Has(core.ActionRestart) && m.gameState.GameOver && m.initials == nil {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.held.Tick()
	m.inputFrame.Clear()

	wasOver := m.gameState.GameOver
	m.gameState = result.State
	m.logEvents(result.Events)

	if m.gameState.GameOver && !wasOver {
		m.finish()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.match = multiplayer.NewMatch(multiplayer.NewMatchID(), m.mode, m.game.ID())
	m.resultSaved = false
	m.lastWave = 0
	m.held.Reset()
	m.inputFrame.Clear()

	if m.configChanged {
		m.logger.Info("restarted with updated config")
		m.configChanged = false
	}
	m.logger.Info("game restarted", "seed", m.config.Seed, "match", m.match.ID())
}

// logEvents writes per-tick game events at debug level and wave changes at info.
func (m *GameModel) logEvents(events []core.Event) {
	for _, e := range events {
		m.logger.Debug("event", "kind", e.Kind, "player", e.Player, "points", e.Points, "wave", e.Wave)
	}
	if m.gameState.Wave != m.lastWave {
		if m.lastWave != 0 {
			m.logger.Info("wave started", "wave", m.gameState.Wave, "score", m.gameState.Score)
		}
		m.lastWave = m.gameState.Wave
	}
}

// finish records the outcome once a game ends: versus matches are saved
// as results, other modes may earn a high score entry.
func (m *GameModel) finish() {
	m.logger.Info("game over",
		"score", m.gameState.Score,
		"wave", m.gameState.Wave,
		"winner", m.gameState.Winner,
	)

	if m.resultSaved || m.store == nil {
		return
	}

	if m.mode == multiplayer.MatchModeVersus {
		m.saveMatch(EndReasonCompleted)
		return
	}

	ok, err := m.store.IsHighScore(m.game.ID(), m.gameState.Score)
	if err != nil {
		m.logger.Error("could not check high scores", "error", err)
		return
	}
	if ok {
		prompt := NewInitialsModel(m.gameState.Score, m.gameState.Wave)
		m.initials = &prompt
	}
}

func (m *GameModel) saveScore(initials string) {
	if m.store == nil || m.resultSaved {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), initials, m.gameState.Score, m.gameState.Wave); err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	m.resultSaved = true
	m.logger.Info("score saved", "name", initials, "score", m.gameState.Score, "wave", m.gameState.Wave)
}

func (m *GameModel) saveMatch(reason string) {
	var saver multiplayer.MatchResultSaver = m.store
	result := m.match.Result(m.gameState, reason, time.Now())
	if err := saver.SaveMatchResult(result); err != nil {
		m.logger.Error("could not save match", "error", err, "match", result.MatchID)
		return
	}
	m.resultSaved = true
	m.logger.Info("match saved", "match", result.MatchID, "winner", result.Winner, "reason", reason)
}

// saveAbandonedMatch records a versus match left before it finished.
func (m *GameModel) saveAbandonedMatch() {
	if m.mode != multiplayer.MatchModeVersus || m.store == nil || m.resultSaved || m.gameState.GameOver {
		return
	}
	if m.gameState.Wave == 0 {
		return // Never ticked
	}
	m.saveMatch(EndReasonQuit)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".joust", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.initials != nil {
		return m.initials.View(m.config.ScreenW, m.config.ScreenH)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts a standalone Bubble Tea program for one game. It reports
// whether the player quit, as opposed to leaving for the menu.
func Run(game registry.Game, mode multiplayer.MatchMode, cfg core.RuntimeConfig, opts GameOptions) (quit bool, err error) {
	model := NewGameModel(game, mode, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(GameModel)
	return !ok || !m.BackToMenu(), nil
}
