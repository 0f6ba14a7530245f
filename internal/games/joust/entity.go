package joust

import (
	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
)

// Mount is the bird a rider sits on.
type Mount int

const (
	MountOstrich Mount = iota
	MountStork
)

func (m Mount) String() string {
	if m == MountStork {
		return "stork"
	}
	return "ostrich"
}

// Rider is a player-controlled knight.
type Rider struct {
	Body
	ID              core.PlayerID
	Mount           Mount
	Lives           int // Including the current life
	Score           int
	Alive           bool
	RespawnTimer    int
	InvincibleTimer int
	SpawnX, SpawnY  float64
}

// Collidable reports whether the rider takes part in jousts.
func (r *Rider) Collidable() bool {
	return r.Alive && r.InvincibleTimer == 0
}

// Out reports whether the rider has no lives left.
func (r *Rider) Out() bool {
	return r.Lives <= 0 && !r.Alive
}

// EnemyKind identifies the enemy knight variety.
type EnemyKind int

const (
	KindBounder EnemyKind = iota
	KindHunter
	KindShadowLord
)

func (k EnemyKind) String() string {
	switch k {
	case KindBounder:
		return "Bounder"
	case KindHunter:
		return "Hunter"
	case KindShadowLord:
		return "Shadow Lord"
	default:
		return "Unknown"
	}
}

// Next returns the kind an egg of this kind hatches into.
func (k EnemyKind) Next() EnemyKind {
	switch k {
	case KindBounder:
		return KindHunter
	case KindHunter:
		return KindShadowLord
	default:
		return KindBounder
	}
}

// Stats returns the configured speed and points for a kind.
func (k EnemyKind) Stats(cfg config.JoustEnemies) config.EnemyStats {
	switch k {
	case KindHunter:
		return cfg.Hunter
	case KindShadowLord:
		return cfg.ShadowLord
	default:
		return cfg.Bounder
	}
}

// Enemy is an AI-controlled knight.
type Enemy struct {
	Body
	Brain
	Kind   EnemyKind
	Speed  float64 // Cells per tick before the wave multiplier
	Points int
	Active bool
}

// NewEnemy creates an enemy standing with its feet at (x, bottom).
func NewEnemy(kind EnemyKind, x, bottom float64, cfg config.JoustEnemies, brain Brain) *Enemy {
	stats := kind.Stats(cfg)
	return &Enemy{
		Body: Body{
			X: x,
			Y: bottom - cfg.Height,
			W: cfg.Width,
			H: cfg.Height,
		},
		Brain:  brain,
		Kind:   kind,
		Speed:  stats.Speed * cfg.SpeedScale,
		Points: stats.Points,
		Active: true,
	}
}

// Pterodactyl is the invulnerable-looking hunter that punishes slow waves.
// Only a lance in its open mouth defeats it.
type Pterodactyl struct {
	Body
	State  AIState
	Speed  float64
	Points int
	Active bool
	MouthW float64
	MouthH float64
}

// NewPterodactyl creates a pterodactyl entering from the left or right edge.
func NewPterodactyl(fromLeft bool, y, worldW, speedScale float64, cfg config.JoustPterodactyl) *Pterodactyl {
	p := &Pterodactyl{
		Body: Body{
			Y: y,
			W: cfg.Width,
			H: cfg.Height,
		},
		State:  StatePursue,
		Speed:  cfg.Speed * speedScale,
		Points: cfg.Points,
		Active: true,
		MouthW: cfg.MouthW,
		MouthH: cfg.MouthH,
	}
	if fromLeft {
		p.X = -cfg.Width
		p.VX = p.Speed
		p.FacingRight = true
	} else {
		p.X = worldW
		p.VX = -p.Speed
	}
	return p
}

// Mouth returns the vulnerable box at the leading edge, vertically centred.
func (p *Pterodactyl) Mouth() core.RectF {
	x := p.X
	if p.FacingRight {
		x = p.X + p.W - p.MouthW
	}
	y := p.Y + (p.H-p.MouthH)/2
	return core.NewRectF(x, y, p.MouthW, p.MouthH)
}
