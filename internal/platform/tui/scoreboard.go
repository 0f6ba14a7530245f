package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-joust/internal/games/joust"
	"github.com/vovakirdan/tui-joust/internal/registry"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show mode list sidebar
	sidebarWidth       = 24 // Width of mode list sidebar
	newestMark         = "*"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Matches  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Matches, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Matches, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/right", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/left", "prev mode"),
		),
		Matches: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "versus results"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows one high score table per mode, the totals of the
// selected mode and, on request, the recent versus results.
type ScoreboardModel struct {
	modes       []registry.GameInfo
	modeCursor  int
	store       *storage.Store
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	matches     []storage.MatchResult
	showMatches bool
	newest      int // Index of the most recent entry in scores, -1 if none
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		modes:       registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
		newest:      -1,
	}
	m.reload()
	return m
}

// currentMode returns the id of the selected mode, or "" with no modes.
func (m ScoreboardModel) currentMode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.modeCursor].ID
}

// tableWidth is the room left for the table after margins and sidebar.
func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.showSidebar {
		w -= sidebarWidth + 3
	}
	return w
}

func (m ScoreboardModel) scoreColumns() []table.Column {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Wave", Width: 5},
		{Title: "Date", Width: 12},
	}
	if fixed := 5 + 5 + 9 + 5 + 10; m.tableWidth() > fixed+12 {
		columns[4].Width = min(m.tableWidth()-fixed, 18)
	}
	return columns
}

func matchColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "P1", Width: 7},
		{Title: "P2", Width: 7},
		{Title: "Win", Width: 5},
		{Title: "Wave", Width: 5},
		{Title: "Time", Width: 7},
	}
}

// newTable builds the table for the current view.
func (m ScoreboardModel) newTable() table.Model {
	columns := m.scoreColumns()
	if m.showMatches {
		columns = matchColumns()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Header, stats line, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload reads the selected mode's scores, totals and matches and
// rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.matches = nil, nil, nil
	m.newest = -1

	if mode := m.currentMode(); m.store != nil && mode != "" {
		if scores, err := m.store.TopScores(mode, storage.TableSize); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(mode); err == nil {
			m.stats = stats
		}
		if m.showMatches {
			if matches, err := m.store.RecentMatches(storage.TableSize); err == nil {
				m.matches = matches
			}
		}
	}

	// The highest row id is the entry saved last
	for i, s := range m.scores {
		if m.newest < 0 || s.ID > m.scores[m.newest].ID {
			m.newest = i
		}
	}

	m.table = m.newTable()
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m ScoreboardModel) rows() []table.Row {
	if m.showMatches {
		rows := make([]table.Row, len(m.matches))
		for i, r := range m.matches {
			winner := "draw"
			if r.Winner > 0 {
				winner = fmt.Sprintf("P%d", r.Winner)
			}
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%d", r.Score1),
				fmt.Sprintf("%d", r.Score2),
				winner,
				fmt.Sprintf("%d", r.Wave),
				(time.Duration(r.Duration) * time.Second).String(),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rank := fmt.Sprintf("#%d", i+1)
		if i == m.newest {
			rank += newestMark
		}
		rows[i] = table.Row{
			rank,
			s.Name,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Wave),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.showMatches {
				m.showMatches = false
				m.reload()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.showMatches = false
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
				m.showMatches = false
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Matches):
			m.showMatches = !m.showMatches
			if m.showMatches {
				// Match results belong to the versus mode
				for i, g := range m.modes {
					if g.ID == joust.GameIDVersus {
						m.modeCursor = i
					}
				}
			}
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.table.SetRows(m.rows())
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// summary is the one-line totals of the selected mode.
func (m ScoreboardModel) summary() string {
	if m.showMatches {
		return fmt.Sprintf("%d recent versus matches", len(m.matches))
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Runs %d  Best wave %d  Avg %.0f", m.stats.GamesCount, m.stats.BestWave, m.stats.AvgScore)
	if m.newest >= 0 {
		line += "  " + newestMark + " newest"
	}
	return line
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	switch {
	case m.showMatches:
		title = "VERSUS RESULTS"
	case len(m.modes) > 0:
		title = fmt.Sprintf("HIGH SCORES - %s", m.modes[m.modeCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var (
	scoreboardBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	scoreboardDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// renderWideLayout puts the mode list and the selected mode's best run
// in a sidebar next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	if m.stats != nil && m.stats.GamesCount > 0 {
		sidebar.WriteString("\n")
		sidebar.WriteString(scoreboardDimStyle.Render(fmt.Sprintf("Best   %d\nWave   %d\nRuns   %d",
			m.stats.HighScore, m.stats.BestWave, m.stats.GamesCount)))
		sidebar.WriteString("\n")
	}

	sidebarRendered := scoreboardBoxStyle.Width(sidebarWidth).Render(sidebar.String())
	tableRendered := scoreboardBoxStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout shows the modes as tabs above the table and the
// totals below it.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		shortName := g.Title
		if len(shortName) > 12 {
			shortName = shortName[:11] + "."
		}
		if i == m.modeCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = scoreboardDimStyle.Render(" " + shortName + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.modes) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.modes[m.modeCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(scoreboardBoxStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table with its totals, or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := (m.showMatches && len(m.matches) == 0) || (!m.showMatches && len(m.scores) == 0)
	if empty {
		text := "No scores recorded yet.\nUnseat a few knights to set one!"
		if m.showMatches {
			text = "No versus matches yet.\nChallenge a friend from the menu!"
		}
		return scoreboardDimStyle.Italic(true).Padding(2, 4).Render(text)
	}

	if s := m.summary(); s != "" {
		return m.table.View() + "\n" + scoreboardDimStyle.Render(s)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
