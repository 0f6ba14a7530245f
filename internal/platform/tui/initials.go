package tui

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-joust/internal/storage"
)

// InitialsModel prompts for up to three initials after a qualifying score.
type InitialsModel struct {
	input textinput.Model
	score int
	wave  int
	done  bool
}

// NewInitialsModel creates a focused prompt for the given result.
func NewInitialsModel(score, wave int) InitialsModel {
	ti := textinput.New()
	ti.Placeholder = storage.DefaultInitials
	ti.CharLimit = 3
	ti.Width = 4
	ti.Prompt = "> "
	ti.Validate = func(s string) error {
		for _, r := range s {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return fmt.Errorf("letters and digits only")
			}
		}
		return nil
	}
	ti.Focus()

	return InitialsModel{input: ti, score: score, wave: wave}
}

// Update handles key input. Enter or Esc finishes the prompt.
func (m InitialsModel) Update(msg tea.Msg) (InitialsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.done = true
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Done reports whether the player confirmed the prompt.
func (m InitialsModel) Done() bool {
	return m.done
}

// Initials returns the normalized initials to save.
func (m InitialsModel) Initials() string {
	return storage.NormalizeInitials(m.input.Value())
}

// View renders the prompt box centered in a width × height area.
func (m InitialsModel) View(width, height int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Render("NEW HIGH SCORE")

	body := fmt.Sprintf("%s\n\nScore %d  |  Wave %d\n\nEnter your initials\n%s\n\n%s",
		title,
		m.score,
		m.wave,
		m.input.View(),
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Enter: save"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
