// Package multiplayer provides types and abstractions for multiplayer game support.
// Local co-op and versus matches share one terminal; the same types are used for
// matches hosted over SSH.
package multiplayer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-joust/internal/core"
)

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single rider against the waves.
	MatchModeSolo MatchMode = iota

	// MatchModeCoop is two riders on one keyboard sharing the waves.
	MatchModeCoop

	// MatchModeVersus is two riders who can unseat each other.
	MatchModeVersus
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeCoop:
		return "Co-op"
	case MatchModeVersus:
		return "Versus"
	default:
		return "Unknown"
	}
}

// Players returns how many riders the mode needs.
func (m MatchMode) Players() int {
	if m == MatchModeSolo {
		return 1
	}
	return 2
}

// ParseMatchMode maps a CLI name (solo, coop, versus) to a mode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "solo":
		return MatchModeSolo, nil
	case "coop", "co-op":
		return MatchModeCoop, nil
	case "versus", "vs":
		return MatchModeVersus, nil
	default:
		return MatchModeSolo, fmt.Errorf("multiplayer: unknown mode %q (want solo, coop or versus)", s)
	}
}

// Match is one played game from start to result.
// The platform creates one per game start and finishes it on game over.
type Match struct {
	id      MatchID
	mode    MatchMode
	gameID  string
	started time.Time
}

// NewMatch creates a new match starting now.
func NewMatch(id MatchID, mode MatchMode, gameID string) *Match {
	return &Match{
		id:      id,
		mode:    mode,
		gameID:  gameID,
		started: time.Now(),
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Result builds the persistable outcome from a final game state.
func (m *Match) Result(state core.GameState, reason string, now time.Time) MatchResultData {
	data := MatchResultData{
		MatchID:      string(m.id),
		GameID:       m.gameID,
		Mode:         m.mode.String(),
		Wave:         state.Wave,
		Winner:       int(state.Winner),
		EndReason:    reason,
		DurationSecs: int(now.Sub(m.started).Seconds()),
	}
	for _, p := range state.Players {
		switch p.ID {
		case core.Player1:
			data.Score1 = p.Score
		case core.Player2:
			data.Score2 = p.Score
		}
	}
	return data
}

// MatchResultSaver is an interface for saving match results.
// This allows the platform to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID      string
	GameID       string
	Mode         string
	Score1       int
	Score2       int
	Wave         int
	Winner       int // 0 for a draw
	EndReason    string
	DurationSecs int
}
