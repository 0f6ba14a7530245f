package joust

import (
	"math/rand"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
)

// AIState is the current behaviour of an AI-controlled entity.
type AIState int

const (
	StateWander AIState = iota // Random flaps and turns
	StateChase                 // Heading for the nearest rider
	StateDash                  // Short burst of extra speed
	StateEvade                 // Climbing away from the lava
	StatePursue                // Pterodactyl hunting
)

func (s AIState) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StateChase:
		return "chase"
	case StateDash:
		return "dash"
	case StateEvade:
		return "evade"
	case StatePursue:
		return "pursue"
	default:
		return "unknown"
	}
}

// Brain holds per-enemy AI timers and temperament.
type Brain struct {
	State      AIState
	FlapTimer  int
	TurnTimer  int
	DashTimer  int
	DashLeft   int
	Aggression float64 // Hunter: chance per tick to lock on
	Erratic    float64 // Shadow Lord: scales random flaps and dives
}

// Intent is what the AI wants to do this tick.
type Intent struct {
	VX    float64
	Flap  bool
	Dive  bool
	Evade bool
}

// AI drives enemy behaviour from the game's seeded RNG.
type AI struct {
	cfg config.JoustAI
	rng *rand.Rand
}

// NewAI creates an AI bound to the shared RNG.
func NewAI(cfg config.JoustAI, rng *rand.Rand) *AI {
	return &AI{cfg: cfg, rng: rng}
}

// NewBrain rolls fresh timers and temperament.
func (ai *AI) NewBrain() Brain {
	return Brain{
		State:      StateWander,
		FlapTimer:  ai.between(ai.cfg.FlapMin, ai.cfg.FlapMax),
		TurnTimer:  ai.between(ai.cfg.TurnMin, ai.cfg.TurnMax),
		DashTimer:  ai.between(ai.cfg.DashMin, ai.cfg.DashMax),
		Aggression: ai.betweenF(ai.cfg.AggressionMin, ai.cfg.AggressionMax),
		Erratic:    ai.betweenF(ai.cfg.ErraticMin, ai.cfg.ErraticMax),
	}
}

// Think decides the enemy's move for this tick and updates its state.
// targets are the boxes of riders that can currently be attacked.
func (ai *AI) Think(e *Enemy, targets []core.RectF, lavaY, speedMult float64) Intent {
	speed := e.Speed * speedMult
	in := Intent{VX: e.VX}

	if e.Bottom() >= lavaY-ai.cfg.LavaMargin {
		e.State = StateEvade
		in.Evade = true
		return in
	}

	e.State = StateWander

	e.FlapTimer--
	if e.FlapTimer <= 0 {
		in.Flap = true
		e.FlapTimer = ai.between(ai.cfg.FlapMin, ai.cfg.FlapMax)
	}

	e.TurnTimer--
	if e.TurnTimer <= 0 {
		dir := 1.0
		if ai.rng.Intn(2) == 0 {
			dir = -1
		}
		in.VX = dir * speed * ai.betweenF(0.5, 1.0)
		e.TurnTimer = ai.between(ai.cfg.TurnMin, ai.cfg.TurnMax)
	}

	switch e.Kind {
	case KindHunter:
		if t, ok := nearest(e.Rect(), targets); ok && ai.rng.Float64() < e.Aggression {
			e.State = StateChase
			in.VX = towards(e.CenterX(), t.CenterX()) * speed
			if t.Y < e.Y-ai.cfg.ChaseClimbMargin && ai.rng.Float64() < ai.cfg.ChaseFlapChance {
				in.Flap = true
			}
		}

	case KindShadowLord:
		e.DashTimer--
		if e.DashTimer <= 0 {
			dir := 1.0
			if ai.rng.Intn(2) == 0 {
				dir = -1
			}
			in.VX = dir * speed * ai.cfg.DashBoost
			e.DashLeft = ai.cfg.DashTicks
			e.DashTimer = ai.between(ai.cfg.DashMin, ai.cfg.DashMax)
		}
		if e.DashLeft > 0 {
			e.DashLeft--
			e.State = StateDash
		}
		if ai.rng.Float64() < 0.05*e.Erratic {
			if ai.rng.Intn(2) == 0 {
				in.Flap = true
			} else {
				in.Dive = true
			}
		}
	}

	// Keep wandering speed from decaying to a stop after a hatch or bounce.
	if in.VX == 0 {
		in.VX = speed * 0.5
		if !e.FacingRight {
			in.VX = -in.VX
		}
	}
	return in
}

// ThinkPterodactyl steers the pterodactyl toward the nearest rider.
func (ai *AI) ThinkPterodactyl(p *Pterodactyl, targets []core.RectF, speedMult float64) Intent {
	p.State = StatePursue
	speed := p.Speed * speedMult
	in := Intent{VX: p.VX}

	t, ok := nearest(p.Rect(), targets)
	if !ok {
		return in
	}
	in.VX = towards(p.CenterX(), t.CenterX()) * speed
	switch {
	case t.Y < p.Y-ai.cfg.PursueBand:
		in.Flap = true
	case t.Y <= p.Y+ai.cfg.PursueBand:
		// Level with the target: occasional beats hold altitude.
		in.Flap = ai.rng.Float64() < ai.cfg.HoldFlapChance
	}
	return in
}

func (ai *AI) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + ai.rng.Intn(hi-lo+1)
}

func (ai *AI) betweenF(lo, hi float64) float64 {
	return lo + ai.rng.Float64()*(hi-lo)
}

// nearest returns the target whose centre is closest to from.
func nearest(from core.RectF, targets []core.RectF) (core.RectF, bool) {
	best := -1
	bestDist := 0.0
	for i, t := range targets {
		dx := t.CenterX() - from.CenterX()
		dy := t.CenterY() - from.CenterY()
		d := dx*dx + dy*dy
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return core.RectF{}, false
	}
	return targets[best], true
}

func towards(from, to float64) float64 {
	if to < from {
		return -1
	}
	return 1
}
