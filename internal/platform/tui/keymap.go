package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-joust/internal/core"
)

// DefaultHoldTicks is how long a direction stays held after its last
// key press or auto-repeat.
const DefaultHoldTicks = 20

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
//
// Player 1 uses the arrows and Space. Player 2 uses A/D and W. In a
// one-player game the letter keys drive player 1 as well.
type KeyMapper struct {
	twoPlayer bool
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper(twoPlayer bool) *KeyMapper {
	return &KeyMapper{twoPlayer: twoPlayer}
}

// MapKey translates a key message to a player action.
// Shared keys (pause, restart, back) are reported for Player1.
// Returns ActionNone for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	}

	switch key {
	case "left":
		return core.Player1, core.ActionLeft, false
	case "right":
		return core.Player1, core.ActionRight, false
	case " ", "up":
		return core.Player1, core.ActionFlap, false
	case "down":
		return core.Player1, core.ActionBrake, false
	case "enter":
		return core.Player1, core.ActionConfirm, false
	case "esc":
		return core.Player1, core.ActionBack, false
	case "p":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	}

	letters := core.Player1
	if km.twoPlayer {
		letters = core.Player2
	}
	switch key {
	case "a":
		return letters, core.ActionLeft, false
	case "d":
		return letters, core.ActionRight, false
	case "w":
		return letters, core.ActionFlap, false
	case "s":
		return letters, core.ActionBrake, false
	}

	return core.Player1, core.ActionNone, false
}

// HeldKeys emulates key-up events. Terminals only report presses, so a
// direction counts as held until holdTicks ticks pass without another
// press or auto-repeat of the same key.
type HeldKeys struct {
	holdTicks int
	left      map[core.PlayerID]int
	right     map[core.PlayerID]int
}

// NewHeldKeys creates a tracker; non-positive holdTicks uses DefaultHoldTicks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &HeldKeys{
		holdTicks: holdTicks,
		left:      make(map[core.PlayerID]int),
		right:     make(map[core.PlayerID]int),
	}
}

// Press records a key press. Pressing one direction releases the other;
// braking releases both.
func (h *HeldKeys) Press(player core.PlayerID, action core.Action) {
	switch action {
	case core.ActionLeft:
		h.left[player] = h.holdTicks
		delete(h.right, player)
	case core.ActionRight:
		h.right[player] = h.holdTicks
		delete(h.left, player)
	case core.ActionBrake:
		delete(h.left, player)
		delete(h.right, player)
	}
}

// Apply adds every held direction to frame.
func (h *HeldKeys) Apply(frame *core.MultiInputFrame) {
	for p, n := range h.left {
		if n > 0 {
			frame.Set(p, core.ActionLeft)
		}
	}
	for p, n := range h.right {
		if n > 0 {
			frame.Set(p, core.ActionRight)
		}
	}
}

// Tick ages held directions by one simulation tick.
func (h *HeldKeys) Tick() {
	age(h.left)
	age(h.right)
}

// Held reports whether a direction is currently held.
func (h *HeldKeys) Held(player core.PlayerID, action core.Action) bool {
	switch action {
	case core.ActionLeft:
		return h.left[player] > 0
	case core.ActionRight:
		return h.right[player] > 0
	default:
		return false
	}
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	clear(h.left)
	clear(h.right)
}

func age(m map[core.PlayerID]int) {
	for p, n := range m {
		if n <= 1 {
			delete(m, p)
			continue
		}
		m[p] = n - 1
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
