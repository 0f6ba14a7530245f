package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/games/joust"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

// stubGame ends after a fixed number of steps and records its input.
type stubGame struct {
	endAfter int
	score    int
	steps    int
	paused   bool
	inputs   []core.MultiInputFrame
	resets   int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.paused = false
	g.inputs = nil
	g.resets++
}

func (g *stubGame) Step(in core.MultiInputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && !g.over() {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) over() bool {
	return g.endAfter > 0 && g.steps >= g.endAfter
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Wave:     3,
		GameOver: g.over(),
		Paused:   g.paused,
		Winner:   core.Player1,
		Players: []core.PlayerState{
			{ID: core.Player1, Score: g.score},
			{ID: core.Player2, Score: g.score / 2},
		},
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m, TickMsg(time.Now()))
}

func TestGameModelHeldDirection(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, multiplayer.MatchModeCoop, testConfig(), GameOptions{HoldTicks: 5})
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, runeKey('w'))
	for range 7 {
		m = tick(t, m)
	}

	if len(g.inputs) != 7 {
		t.Fatalf("steps = %d, want 7", len(g.inputs))
	}
	for i, in := range g.inputs {
		held := in.Player1().Has(core.ActionLeft)
		if want := i < 5; held != want {
			t.Errorf("tick %d: left held = %v, want %v", i, held, want)
		}
	}

	// Flap is a one-shot press for player 2
	if !g.inputs[0].Player2().Has(core.ActionFlap) || g.inputs[1].Player2().Has(core.ActionFlap) {
		t.Error("flap should apply to exactly one tick")
	}
}

func TestGameModelHighScoreEntry(t *testing.T) {
	store := openStore(t)
	g := &stubGame{endAfter: 1, score: 1500}
	m := NewGameModel(g, multiplayer.MatchModeSolo, testConfig(), GameOptions{Store: store})
	m.Init()

	m = tick(t, m)
	if m.initials == nil {
		t.Fatal("a qualifying score should open the initials prompt")
	}

	for _, r := range "xy" {
		m = send(t, m, runeKey(r))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.initials != nil {
		t.Error("prompt should close after enter")
	}
	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Name != "XY" || scores[0].Score != 1500 || scores[0].Wave != 3 {
		t.Errorf("scores = %+v", scores)
	}

	// Further ticks do not save again
	m = tick(t, m)
	scores, _ = store.TopScores("stub", 10)
	if len(scores) != 1 {
		t.Errorf("score saved %d times", len(scores))
	}

	// Restart clears the game over
	m = send(t, m, runeKey('r'))
	m = tick(t, m)
	if m.State().GameOver || g.resets < 2 {
		t.Error("R after game over should restart")
	}
}

func TestGameModelNoPromptForLowScore(t *testing.T) {
	store := openStore(t)
	for i := range storage.TableSize {
		store.SaveScore("stub", "TOP", 10000+i, 9)
	}

	g := &stubGame{endAfter: 1, score: 100}
	m := NewGameModel(g, multiplayer.MatchModeSolo, testConfig(), GameOptions{Store: store})
	m.Init()
	m = tick(t, m)

	if m.initials != nil {
		t.Error("score below the table should not prompt")
	}
}

func TestGameModelVersusSavesMatch(t *testing.T) {
	store := openStore(t)
	g := &stubGame{endAfter: 2, score: 3000}
	m := NewGameModel(g, multiplayer.MatchModeVersus, testConfig(), GameOptions{Store: store})
	m.Init()

	m = tick(t, m)
	m = tick(t, m)
	if m.initials != nil {
		t.Error("versus should not prompt for initials")
	}

	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	got := matches[0]
	if got.Mode != "Versus" || got.Score1 != 3000 || got.Score2 != 1500 || got.Winner != 1 || got.EndReason != EndReasonCompleted {
		t.Errorf("match = %+v", got)
	}
}

func TestGameModelVersusQuitSavesMatch(t *testing.T) {
	store := openStore(t)
	g := &stubGame{score: 10}
	m := NewGameModel(g, multiplayer.MatchModeVersus, testConfig(), GameOptions{Store: store})
	m.Init()
	m = tick(t, m)

	m = send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	matches, _ := store.RecentMatches(10)
	if len(matches) != 1 || matches[0].EndReason != EndReasonQuit {
		t.Errorf("matches = %+v", matches)
	}
}

func TestGameModelResizeStartsNewMatch(t *testing.T) {
	store := openStore(t)
	g := &stubGame{score: 40}
	m := NewGameModel(g, multiplayer.MatchModeVersus, testConfig(), GameOptions{Store: store})
	m.Init()
	m = tick(t, m)

	before := m.match.ID()
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	after := m.match.ID()
	if after == before {
		t.Fatal("resize should start a new match")
	}

	m = send(t, m, runeKey('q'))
	matches, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 || matches[0].MatchID != string(after) {
		t.Errorf("matches = %+v, want one saved as %s", matches, after)
	}
}

func TestGameModelEscPausesThenLeaves(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, multiplayer.MatchModeSolo, testConfig(), GameOptions{})
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Fatal("esc during play should pause, not leave")
	}
	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("game should be paused")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
}

func TestGameModelRunsJoust(t *testing.T) {
	m := NewGameModel(joust.New(multiplayer.MatchModeSolo), multiplayer.MatchModeSolo, testConfig(), GameOptions{})
	m.Init()
	for range 10 {
		m = tick(t, m)
	}
	if m.State().Wave != 1 || m.State().GameOver {
		t.Errorf("state = %+v", m.State())
	}
	if m.View() == "" {
		t.Error("view should render the game")
	}
}

func TestMenuChoices(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.KeyMsg
		wantMode   multiplayer.MatchMode
		wantGame   string
		wantScores bool
		wantQuit   bool
	}{
		{"first entry", []tea.KeyMsg{{Type: tea.KeyEnter}}, multiplayer.MatchModeSolo, joust.GameID, false, false},
		{"down to co-op", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, multiplayer.MatchModeCoop, joust.GameIDCoop, false, false},
		{"number key versus", []tea.KeyMsg{runeKey('3')}, multiplayer.MatchModeVersus, joust.GameIDVersus, false, false},
		{"high scores", []tea.KeyMsg{runeKey('4')}, 0, "", true, false},
		{"quit entry", []tea.KeyMsg{runeKey('5')}, 0, "", false, true},
		{"q", []tea.KeyMsg{runeKey('q')}, 0, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = NewMenuModel(nil, testConfig())
			for _, k := range tt.keys {
				model, _ = model.Update(k)
			}
			m := model.(MenuModel)

			if m.WantsScoreboard() != tt.wantScores || m.IsQuitting() != tt.wantQuit {
				t.Fatalf("scores=%v quit=%v", m.WantsScoreboard(), m.IsQuitting())
			}
			if tt.wantGame == "" {
				if m.Selected() != nil {
					t.Errorf("selected = %+v", m.Selected())
				}
				return
			}
			if m.Selected() == nil || m.Selected().GameID != tt.wantGame || m.Selected().Mode != tt.wantMode {
				t.Errorf("selected = %+v", m.Selected())
			}
		})
	}
}

func TestSessionFlow(t *testing.T) {
	var model tea.Model = NewSessionModel(testConfig(), GameOptions{})

	// Open the scoreboard and come back
	model, _ = model.Update(runeKey('4'))
	if s := model.(SessionModel); s.current != screenScores {
		t.Fatalf("screen = %v, want scores", s.current)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if s := model.(SessionModel); s.current != screenMenu {
		t.Fatalf("screen = %v, want menu", s.current)
	}

	// Start a co-op game
	model, _ = model.Update(runeKey('2'))
	s := model.(SessionModel)
	if s.current != screenGame || s.gameModel == nil || s.gameModel.mode != multiplayer.MatchModeCoop {
		t.Fatalf("session = %+v", s)
	}
	model, _ = model.Update(TickMsg(time.Now()))

	// Pause, then leave
	model, _ = model.Update(runeKey('p'))
	model, _ = model.Update(TickMsg(time.Now()))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if s := model.(SessionModel); s.current != screenMenu || s.quitting {
		t.Errorf("should be back at the menu, screen = %v", s.current)
	}
}
