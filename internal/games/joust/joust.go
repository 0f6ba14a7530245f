package joust

import (
	"github.com/vovakirdan/tui-joust/internal/core"
)

// Outcome is the result of two knights meeting.
type Outcome int

const (
	NoContact Outcome = iota
	Bounce            // Same height: both are knocked back
	AWins             // First box is higher
	BWins             // Second box is higher
)

func (o Outcome) String() string {
	switch o {
	case Bounce:
		return "bounce"
	case AWins:
		return "a-wins"
	case BWins:
		return "b-wins"
	default:
		return "none"
	}
}

// IsAbove reports whether a's feet are above b's midline.
func IsAbove(a, b core.RectF) bool {
	return a.Bottom() < b.CenterY()
}

// Resolve applies the jousting rule to two boxes: the higher lance wins.
func Resolve(a, b core.RectF) Outcome {
	if !a.Intersects(b) {
		return NoContact
	}
	switch {
	case IsAbove(a, b):
		return AWins
	case IsAbove(b, a):
		return BWins
	default:
		return Bounce
	}
}

// Separate knocks two bodies apart after a tied joust: horizontal
// velocities reverse and the boxes are pushed out of each other.
func Separate(a, b *Body) {
	a.VX, b.VX = -a.VX, -b.VX
	if a.VX != 0 {
		a.FacingRight = a.VX > 0
	}
	if b.VX != 0 {
		b.FacingRight = b.VX > 0
	}

	overlap := min(a.X+a.W, b.X+b.W) - max(a.X, b.X)
	if overlap <= 0 {
		return
	}
	push := overlap/2 + 0.01
	if a.CenterX() <= b.CenterX() {
		a.X -= push
		b.X += push
	} else {
		a.X += push
		b.X -= push
	}
}
