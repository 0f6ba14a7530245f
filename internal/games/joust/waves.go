package joust

import (
	"fmt"

	"github.com/vovakirdan/tui-joust/internal/config"
)

// Composition is the enemy mix of a wave.
type Composition struct {
	Bounders    int
	Hunters     int
	ShadowLords int
}

// Total returns the number of enemies.
func (c Composition) Total() int {
	return c.Bounders + c.Hunters + c.ShadowLords
}

func (c Composition) String() string {
	return fmt.Sprintf("%d bounders, %d hunters, %d shadow lords", c.Bounders, c.Hunters, c.ShadowLords)
}

// Kinds expands the composition into spawn order.
func (c Composition) Kinds() []EnemyKind {
	kinds := make([]EnemyKind, 0, c.Total())
	for range c.Bounders {
		kinds = append(kinds, KindBounder)
	}
	for range c.Hunters {
		kinds = append(kinds, KindHunter)
	}
	for range c.ShadowLords {
		kinds = append(kinds, KindShadowLord)
	}
	return kinds
}

// CompositionFor returns the enemy mix for a 1-based wave. Waves past
// the table grow from its last entry: d/3 more bounders, d/2 more hunters
// and d more shadow lords, where d is how far past the table the wave is.
func CompositionFor(wave int, table []config.WaveEntry) Composition {
	if len(table) == 0 {
		return Composition{Bounders: max(wave, 1)}
	}
	wave = max(wave, 1)
	if wave <= len(table) {
		e := table[wave-1]
		return Composition{Bounders: e.Bounders, Hunters: e.Hunters, ShadowLords: e.ShadowLords}
	}
	last := table[len(table)-1]
	d := wave - len(table)
	return Composition{
		Bounders:    last.Bounders + d/3,
		Hunters:     last.Hunters + d/2,
		ShadowLords: last.ShadowLords + d,
	}
}

// WavePhase is where the wave manager is in its cycle.
type WavePhase int

const (
	PhaseActive       WavePhase = iota // Enemies in play
	PhaseIntermission                  // Cleared, waiting to start the next wave
)

// Wave tracks the current wave's progress.
type Wave struct {
	Number      int
	Composition Composition
	Phase       WavePhase
	Ticks       int  // Ticks since the wave started
	DelayTimer  int  // Ticks left in the intermission
	BannerTimer int  // Ticks left showing the wave banner
	PteroTimer  int  // Ticks until a pterodactyl appears
	HatchedAny  bool // An egg hatched this wave
	BonusPaid   bool // Last clear earned the egg bonus
}
