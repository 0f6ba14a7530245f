package joust

import (
	"math"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
)

// hudRows is the number of rows reserved for the score line.
const hudRows = 1

// Layout is the arena geometry for one wave, in cells.
type Layout struct {
	Wave      int
	Width     int
	Height    int
	Top       int // First playable row
	FloorY    int // Row of the wave-keyed bottom sections
	LavaY     int // First lava row
	Platforms []Platform
}

// BottomSections returns the bottom row used for a wave: the last
// configured entry whose wave is not greater than the given one.
func BottomSections(wave int, cfg config.JoustLayout) []config.Section {
	if len(cfg.Bottom) == 0 {
		return nil
	}
	sections := cfg.Bottom[0].Sections
	for _, b := range cfg.Bottom {
		if b.Wave > wave {
			break
		}
		sections = b.Sections
	}
	return sections
}

// BuildLayout scales the configured ledges and the wave's bottom sections
// to a w×h screen. Every platform is at least one cell wide and lies
// inside the playfield.
func BuildLayout(wave, w, h int, cfg config.JoustLayout) Layout {
	lavaRows := max(cfg.LavaRows, 1)
	l := Layout{
		Wave:   wave,
		Width:  w,
		Height: h,
		Top:    hudRows,
		LavaY:  h - lavaRows,
	}
	l.FloorY = l.LavaY - 1 - max(cfg.BottomGap, 0)
	playH := float64(l.FloorY - l.Top)

	// Ledges stay far enough from the ceiling for a rider to stand on them.
	minY := l.Top + 2
	maxY := l.FloorY - 3
	for _, ledge := range cfg.Ledges {
		y := l.Top + int(math.Round(ledge.Y*playH))
		y = core.Clamp(y, minY, max(minY, maxY))
		l.Platforms = append(l.Platforms, Platform{Rect: l.span(ledge.X, ledge.W, y)})
	}

	for _, s := range BottomSections(wave, cfg) {
		l.Platforms = append(l.Platforms, Platform{Rect: l.span(s.X, s.W, l.FloorY), Floor: true})
	}
	return l
}

// span converts a horizontal fraction range into a one-row platform.
func (l Layout) span(fx, fw float64, y int) core.RectF {
	x := int(math.Round(fx * float64(l.Width)))
	width := max(int(math.Round(fw*float64(l.Width))), 1)
	x = core.Clamp(x, 0, l.Width-1)
	if x+width > l.Width {
		width = l.Width - x
	}
	return core.NewRectF(float64(x), float64(y), float64(width), 1)
}

// World returns the physics view of the layout.
func (l Layout) World() World {
	return World{
		Width:     float64(l.Width),
		Top:       float64(l.Top),
		LavaY:     float64(l.LavaY),
		Platforms: l.Platforms,
	}
}

// Ledges returns the fixed platforms.
func (l Layout) Ledges() []Platform {
	var out []Platform
	for _, p := range l.Platforms {
		if !p.Floor {
			out = append(out, p)
		}
	}
	return out
}

// Floor returns the wave-keyed bottom sections.
func (l Layout) Floor() []Platform {
	var out []Platform
	for _, p := range l.Platforms {
		if p.Floor {
			out = append(out, p)
		}
	}
	return out
}

// spawnLedge returns the index into Platforms of the widest ledge,
// or -1 when there are no ledges.
func (l Layout) spawnLedge() int {
	best := -1
	for i, p := range l.Platforms {
		if p.Floor {
			continue
		}
		if best < 0 || p.Rect.W > l.Platforms[best].Rect.W {
			best = i
		}
	}
	return best
}

// PlayerSpawn returns the top-left position for a rider of size w×h.
// Riders start on the widest ledge, player 1 on the left third and
// player 2 on the right third.
func (l Layout) PlayerSpawn(id core.PlayerID, w, h float64) (float64, float64) {
	idx := l.spawnLedge()
	if idx < 0 {
		x := float64(l.Width)/2 - w/2
		if id == core.Player2 {
			x += w * 2
		}
		return x, float64(l.FloorY) - h
	}
	r := l.Platforms[idx].Rect
	frac := 1.0 / 3.0
	if id == core.Player2 {
		frac = 2.0 / 3.0
	}
	x := r.X + r.W*frac - w/2
	x = core.ClampF(x, r.X, math.Max(r.X, r.Right()-w))
	return x, r.Y - h
}

// EnemySpawns returns the platforms enemies may appear on: every ledge
// except the riders' spawn ledge, or all platforms when that leaves none.
func (l Layout) EnemySpawns() []Platform {
	skip := l.spawnLedge()
	var out []Platform
	for i, p := range l.Platforms {
		if p.Floor || i == skip {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		out = append(out, l.Platforms...)
	}
	return out
}
