package joust

import (
	"math"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
)

// Body is the physical state shared by every moving entity.
// Y grows downward; VY < 0 means rising.
type Body struct {
	X, Y        float64
	VX, VY      float64
	W, H        float64
	FacingRight bool
	OnGround    bool
}

// Rect returns the collision box.
func (b *Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// Bottom returns the y-coordinate of the feet.
func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal midpoint.
func (b *Body) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical midpoint.
func (b *Body) CenterY() float64 {
	return b.Y + b.H/2
}

// Platform is a solid one-way surface. Floor marks the wave-keyed bottom row.
type Platform struct {
	Rect  core.RectF
	Floor bool
}

// World is the static geometry bodies move through.
type World struct {
	Width     float64 // Playfield width; bodies wrap around it
	Top       float64 // First playable row
	LavaY     float64 // Top row of the lava
	Platforms []Platform
}

// InLava reports whether a body's feet have sunk below the lava surface.
func (w *World) InLava(b *Body) bool {
	return b.Bottom() > w.LavaY
}

// Submerged reports whether a body is entirely inside the lava.
func (w *World) Submerged(b *Body) bool {
	return b.Y >= w.LavaY
}

// MoveResult describes what happened during a Move.
type MoveResult struct {
	Landed  bool // Touched down this move after being airborne
	Bonked  bool // Hit the underside of a platform
	Ceiling bool // Hit the top of the playfield
	Wrapped bool
}

// Physics applies the flight model to bodies.
type Physics struct {
	cfg config.JoustPhysics
}

// NewPhysics creates a physics helper.
func NewPhysics(cfg config.JoustPhysics) Physics {
	return Physics{cfg: cfg}
}

// ApplyGravity accelerates a body downward and clamps vertical speed.
func (p Physics) ApplyGravity(b *Body, mult float64) {
	b.VY += p.cfg.Gravity * mult
	b.VY = core.ClampF(b.VY, -p.cfg.MaxVerticalSpeed, p.cfg.MaxVerticalSpeed)
}

// Flap applies one wing beat. power scales the impulse and upCap scales the
// maximum rising speed.
func (p Physics) Flap(b *Body, power, upCap float64) {
	b.VY -= p.cfg.FlapImpulse * power
	if limit := -p.cfg.MaxVerticalSpeed * upCap; b.VY < limit {
		b.VY = limit
	}
	b.OnGround = false
}

// Dive pushes a body downward by a multiple of gravity.
func (p Physics) Dive(b *Body, mult float64) {
	b.VY = math.Min(b.VY+p.cfg.Gravity*mult, p.cfg.MaxVerticalSpeed)
}

// Steer accelerates toward dir (-1, 0 or 1). With no direction the body
// decelerates toward zero without overshooting. brake triples deceleration.
func (p Physics) Steer(b *Body, dir int, brake bool) {
	accel := p.cfg.HorizontalAccel
	decel := p.cfg.HorizontalDecel
	if !b.OnGround {
		accel *= p.cfg.AirControl
	}
	if brake {
		decel *= 3
	}

	if dir != 0 && !brake {
		b.VX += float64(dir) * accel
		b.VX = core.ClampF(b.VX, -p.cfg.MaxHorizontalSpeed, p.cfg.MaxHorizontalSpeed)
		b.FacingRight = dir > 0
		return
	}

	switch {
	case b.VX > 0:
		b.VX = math.Max(0, b.VX-decel)
	case b.VX < 0:
		b.VX = math.Min(0, b.VX+decel)
	}
}

// Move integrates velocity, resolving platform contacts when land is true.
// Fast vertical motion is split into sub-steps so a body cannot skip over a
// one-row platform in a single tick.
func (p Physics) Move(b *Body, w *World, land bool) MoveResult {
	var res MoveResult
	wasGrounded := b.OnGround

	if b.OnGround && !p.supported(b, w) {
		b.OnGround = false
	}
	if b.OnGround && b.VY > 0 {
		b.VY = 0
	}

	steps := 1
	if speed := math.Abs(b.VY); p.cfg.SubstepThreshold > 0 && speed > p.cfg.SubstepThreshold {
		steps = int(math.Ceil(speed / p.cfg.SubstepThreshold))
	}
	dx := b.VX / float64(steps)
	dy := b.VY / float64(steps)

	for range steps {
		prevY := b.Y
		prevBottom := b.Bottom()
		b.X += dx
		b.Y += dy

		if land {
			if hit := p.collidePlatforms(b, w, prevY, prevBottom); hit != 0 {
				if hit > 0 {
					if !wasGrounded {
						res.Landed = true
					}
				} else {
					res.Bonked = true
				}
				dy = b.VY / float64(steps)
			}
		}

		if b.Y < w.Top {
			b.Y = w.Top
			if b.VY < 0 {
				b.VY = 0
			}
			dy = 0
			res.Ceiling = true
		}
	}

	if b.VX > 0 {
		b.FacingRight = true
	} else if b.VX < 0 {
		b.FacingRight = false
	}

	// Wrap horizontally
	if b.X < -b.W {
		b.X = w.Width
		res.Wrapped = true
	} else if b.X > w.Width {
		b.X = -b.W
		res.Wrapped = true
	}

	return res
}

// collidePlatforms snaps the body onto (1) or under (-1) the first
// platform it crossed this sub-step. Returns 0 when nothing was hit.
func (p Physics) collidePlatforms(b *Body, w *World, prevY, prevBottom float64) int {
	for _, pl := range w.Platforms {
		r := pl.Rect
		if !b.Rect().OverlapsX(r) {
			continue
		}
		if b.VY >= 0 && prevBottom <= r.Y+p.cfg.LandingTolerance && b.Bottom() > r.Y && b.Y < r.Bottom() {
			b.Y = r.Y - b.H
			b.VY = 0
			b.OnGround = true
			return 1
		}
		if b.VY < 0 && prevY >= r.Bottom()-p.cfg.LandingTolerance && b.Y < r.Bottom() && b.Bottom() > r.Y {
			b.Y = r.Bottom()
			b.VY = 0
			return -1
		}
	}
	return 0
}

// supported reports whether a grounded body still stands on a platform.
func (p Physics) supported(b *Body, w *World) bool {
	const eps = 1e-6
	for _, pl := range w.Platforms {
		if math.Abs(b.Bottom()-pl.Rect.Y) < eps && b.Rect().OverlapsX(pl.Rect) {
			return true
		}
	}
	return false
}
