package joust

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
)

func testPhysics() Physics {
	return NewPhysics(config.DefaultJoustConfig().Physics)
}

func testWorld() World {
	return World{
		Width: 40,
		Top:   1,
		LavaY: 23,
		Platforms: []Platform{
			{Rect: core.NewRectF(10, 10, 10, 1)},
		},
	}
}

func TestGravityClamp(t *testing.T) {
	p := testPhysics()
	b := &Body{W: 3, H: 2}

	p.ApplyGravity(b, 1)
	if math.Abs(b.VY-p.cfg.Gravity) > 1e-9 {
		t.Errorf("VY after one tick = %v, want %v", b.VY, p.cfg.Gravity)
	}

	for range 1000 {
		p.ApplyGravity(b, 1)
	}
	if b.VY != p.cfg.MaxVerticalSpeed {
		t.Errorf("VY = %v, want terminal %v", b.VY, p.cfg.MaxVerticalSpeed)
	}
}

func TestFlap(t *testing.T) {
	p := testPhysics()
	b := &Body{W: 3, H: 2, OnGround: true}

	p.Flap(b, 1, 1)
	if b.VY != -p.cfg.FlapImpulse {
		t.Errorf("VY = %v, want %v", b.VY, -p.cfg.FlapImpulse)
	}
	if b.OnGround {
		t.Error("flap should leave the ground")
	}

	// Repeated flaps are capped
	for range 10 {
		p.Flap(b, 1, 1)
	}
	if b.VY != -p.cfg.MaxVerticalSpeed {
		t.Errorf("VY = %v, want cap %v", b.VY, -p.cfg.MaxVerticalSpeed)
	}

	// Enemies use a lower cap
	e := &Body{}
	for range 10 {
		p.Flap(e, 0.7, 0.8)
	}
	if want := -p.cfg.MaxVerticalSpeed * 0.8; math.Abs(e.VY-want) > 1e-9 {
		t.Errorf("enemy VY = %v, want %v", e.VY, want)
	}
}

func TestSteer(t *testing.T) {
	p := testPhysics()

	t.Run("accelerates to cap", func(t *testing.T) {
		b := &Body{OnGround: true}
		for range 200 {
			p.Steer(b, 1, false)
		}
		if b.VX != p.cfg.MaxHorizontalSpeed {
			t.Errorf("VX = %v, want %v", b.VX, p.cfg.MaxHorizontalSpeed)
		}
		if !b.FacingRight {
			t.Error("should face right")
		}
	})

	t.Run("air control is weaker", func(t *testing.T) {
		ground := &Body{OnGround: true}
		air := &Body{}
		p.Steer(ground, -1, false)
		p.Steer(air, -1, false)
		if !(air.VX > ground.VX) || air.VX >= 0 {
			t.Errorf("air VX %v should be smaller in magnitude than ground VX %v", air.VX, ground.VX)
		}
	})

	t.Run("decelerates without overshoot", func(t *testing.T) {
		b := &Body{VX: 0.1}
		for range 100 {
			p.Steer(b, 0, false)
			if b.VX < 0 {
				t.Fatalf("VX overshot to %v", b.VX)
			}
		}
		if b.VX != 0 {
			t.Errorf("VX = %v, want 0", b.VX)
		}
	})

	t.Run("brake stops faster", func(t *testing.T) {
		coast := &Body{VX: 0.3}
		brake := &Body{VX: 0.3}
		p.Steer(coast, 0, false)
		p.Steer(brake, 1, true)
		if brake.VX >= coast.VX {
			t.Errorf("brake VX %v should be below coast VX %v", brake.VX, coast.VX)
		}
	})
}

func TestWrap(t *testing.T) {
	p := testPhysics()
	w := testWorld()

	b := &Body{X: -2.95, Y: 3, VX: -0.1, W: 3, H: 2}
	if res := p.Move(b, &w, false); !res.Wrapped || b.X != w.Width {
		t.Errorf("left exit: X = %v wrapped=%v, want %v", b.X, res.Wrapped, w.Width)
	}

	b = &Body{X: 39.95, Y: 3, VX: 0.1, W: 3, H: 2}
	if res := p.Move(b, &w, false); !res.Wrapped || b.X != -3 {
		t.Errorf("right exit: X = %v wrapped=%v, want -3", b.X, res.Wrapped)
	}
}

func TestCeiling(t *testing.T) {
	p := testPhysics()
	w := testWorld()

	b := &Body{X: 2, Y: 1.2, VY: -0.5, W: 3, H: 2}
	res := p.Move(b, &w, true)
	if !res.Ceiling || b.Y != w.Top || b.VY != 0 {
		t.Errorf("Y=%v VY=%v ceiling=%v, want clamped at %v", b.Y, b.VY, res.Ceiling, w.Top)
	}
}

func TestLanding(t *testing.T) {
	p := testPhysics()
	w := testWorld()
	b := &Body{X: 12, Y: 5, W: 3, H: 2}

	landed := 0
	for range 300 {
		p.ApplyGravity(b, 1)
		if p.Move(b, &w, true).Landed {
			landed++
		}
	}

	if landed != 1 {
		t.Errorf("landed %d times, want 1", landed)
	}
	if !b.OnGround || b.Y != 8 || b.VY != 0 {
		t.Errorf("Y=%v VY=%v onGround=%v, want standing at 8", b.Y, b.VY, b.OnGround)
	}
}

func TestWalkOffLedge(t *testing.T) {
	p := testPhysics()
	w := testWorld()
	b := &Body{X: 18, Y: 8, W: 3, H: 2, OnGround: true, VX: 0.3}

	for range 30 {
		p.ApplyGravity(b, 1)
		p.Move(b, &w, true)
	}
	if b.OnGround {
		t.Error("should have walked off the ledge")
	}
	if b.Y <= 8 {
		t.Errorf("Y = %v, should be falling", b.Y)
	}
}

func TestHeadBonk(t *testing.T) {
	p := testPhysics()
	w := testWorld()
	b := &Body{X: 12, Y: 11.2, VY: -0.4, W: 3, H: 2}

	res := p.Move(b, &w, true)
	if !res.Bonked {
		t.Fatal("expected bonk")
	}
	if b.Y != 11 || b.VY != 0 {
		t.Errorf("Y=%v VY=%v, want 11 and 0", b.Y, b.VY)
	}
}

func TestFlyThroughWithoutLanding(t *testing.T) {
	p := testPhysics()
	w := testWorld()
	b := &Body{X: 12, Y: 8, VY: 0.5, W: 3, H: 2}

	for range 10 {
		p.Move(b, &w, false)
	}
	if b.Y <= 10 {
		t.Errorf("Y = %v, pterodactyl-style move should ignore platforms", b.Y)
	}
}

// A falling body never ends up below a platform it started above.
func TestNoTunneling(t *testing.T) {
	cfg := config.DefaultJoustConfig().Physics
	cfg.MaxVerticalSpeed = 6
	p := NewPhysics(cfg)
	rng := rand.New(rand.NewSource(7))

	for i := range 500 {
		w := testWorld()
		b := &Body{
			X:  10 + rng.Float64()*7,
			Y:  1 + rng.Float64()*6.9,
			VY: rng.Float64() * 6,
			W:  3,
			H:  2,
		}
		p.Move(b, &w, true)
		if b.Bottom() > 10+1e-9 {
			t.Fatalf("case %d: body passed through platform (bottom %v)", i, b.Bottom())
		}
	}
}

func TestLavaChecks(t *testing.T) {
	w := testWorld()
	b := &Body{Y: 21.5, H: 2}
	if !w.InLava(b) {
		t.Error("feet below lava surface should be in lava")
	}
	if w.Submerged(b) {
		t.Error("body should not be fully submerged")
	}
	b.Y = 23
	if !w.Submerged(b) {
		t.Error("body at lava surface should be submerged")
	}
}
