package joust

import (
	"github.com/vovakirdan/tui-joust/internal/config"
)

// Egg is what an unseated enemy leaves behind. Left alone it hatches into
// a tougher knight.
type Egg struct {
	Body
	Kind       EnemyKind
	Bounces    int
	MaxBounces int
	HatchTimer int
	Active     bool
}

// NewEgg drops an egg from a defeated enemy.
func NewEgg(from *Enemy, hatchTicks int, cfg config.JoustEggs) *Egg {
	return &Egg{
		Body: Body{
			X:  from.X + (from.W-cfg.Size)/2,
			Y:  from.Bottom() - cfg.Size,
			VX: from.VX * cfg.Bounce,
			VY: -cfg.DropSpeed,
			W:  cfg.Size,
			H:  cfg.Size,
		},
		Kind:       from.Kind,
		MaxBounces: cfg.MaxBounces,
		HatchTimer: hatchTicks,
		Active:     true,
	}
}

// Resting reports whether the egg has stopped bouncing.
func (e *Egg) Resting() bool {
	return e.OnGround && e.VY == 0
}

// Update moves the egg one tick and reports whether it hatched.
// Eggs sinking into lava are destroyed.
func (e *Egg) Update(p Physics, w *World, cfg config.JoustEggs) bool {
	if !e.Active {
		return false
	}

	p.ApplyGravity(&e.Body, cfg.GravityMult)
	impact := e.VY
	res := p.Move(&e.Body, w, true)

	if res.Landed {
		if e.Bounces < e.MaxBounces && impact > p.cfg.Gravity*cfg.GravityMult*2 {
			e.Bounces++
			e.VY = -impact * cfg.Bounce
			e.VX *= cfg.Bounce
			e.OnGround = false
		} else {
			e.VX = 0
		}
	}
	if e.OnGround {
		e.VX = 0
	}

	if w.InLava(&e.Body) {
		e.Active = false
		return false
	}

	if e.Resting() {
		e.HatchTimer--
		if e.HatchTimer <= 0 {
			e.Active = false
			return true
		}
	}
	return false
}
