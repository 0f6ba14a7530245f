package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-joust/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyTwoPlayers(t *testing.T) {
	km := NewKeyMapper(true)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.Player1, core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.Player1, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.Player1, core.ActionFlap, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.Player1, core.ActionFlap, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.Player1, core.ActionBrake, false},
		{"a", runeKey('a'), core.Player2, core.ActionLeft, false},
		{"d", runeKey('d'), core.Player2, core.ActionRight, false},
		{"w", runeKey('w'), core.Player2, core.ActionFlap, false},
		{"s", runeKey('s'), core.Player2, core.ActionBrake, false},
		{"p", runeKey('p'), core.Player1, core.ActionPause, false},
		{"r", runeKey('r'), core.Player1, core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.Player1, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.Player1, core.ActionConfirm, false},
		{"q", runeKey('q'), core.Player1, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.Player1, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, quit := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, %v; want %v, %v, %v",
					tt.msg.String(), player, action, quit, tt.player, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyOnePlayerLetters(t *testing.T) {
	km := NewKeyMapper(false)
	player, action, _ := km.MapKey(runeKey('a'))
	if player != core.Player1 || action != core.ActionLeft {
		t.Errorf("one-player A = %v %v, want P1 Left", player, action)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(false)

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(core.Player1, core.ActionLeft)

	for tick := range 3 {
		frame := core.NewMultiInputFrame()
		h.Apply(&frame)
		if !frame.Player1().Has(core.ActionLeft) {
			t.Fatalf("tick %d: left should still be held", tick)
		}
		h.Tick()
	}

	frame := core.NewMultiInputFrame()
	h.Apply(&frame)
	if frame.Player1().Has(core.ActionLeft) {
		t.Error("left should be released after the hold window")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(core.Player2, core.ActionRight)
	h.Tick()
	h.Press(core.Player2, core.ActionRight) // Auto-repeat
	h.Tick()
	if !h.Held(core.Player2, core.ActionRight) {
		t.Error("auto-repeat should keep the key held")
	}
}

func TestHeldKeysOpposites(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.Player1, core.ActionLeft)
	h.Press(core.Player1, core.ActionRight)
	if h.Held(core.Player1, core.ActionLeft) || !h.Held(core.Player1, core.ActionRight) {
		t.Error("pressing right should release left")
	}

	// Players are independent
	h.Press(core.Player2, core.ActionLeft)
	if !h.Held(core.Player1, core.ActionRight) {
		t.Error("player 2 input should not touch player 1")
	}

	h.Press(core.Player1, core.ActionBrake)
	if h.Held(core.Player1, core.ActionLeft) || h.Held(core.Player1, core.ActionRight) {
		t.Error("brake should release both directions")
	}
	if !h.Held(core.Player2, core.ActionLeft) {
		t.Error("brake is per player")
	}

	h.Reset()
	if h.Held(core.Player2, core.ActionLeft) {
		t.Error("reset should release everything")
	}
}

func TestHeldKeysDefault(t *testing.T) {
	if h := NewHeldKeys(0); h.holdTicks != DefaultHoldTicks {
		t.Errorf("holdTicks = %d, want %d", h.holdTicks, DefaultHoldTicks)
	}
}
