package joust

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func newTestGame(t *testing.T, mode multiplayer.MatchMode) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultJoustConfig())
	g.Reset(testRuntime())
	return g
}

func hasEvent(events []core.Event, kind string) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestGameInit(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)

	state := g.State()
	if state.Wave != 1 {
		t.Errorf("wave = %d, want 1", state.Wave)
	}
	if state.GameOver || state.Paused {
		t.Error("new game should be running")
	}
	if len(state.Players) != 1 || state.Players[0].Lives != 3 {
		t.Errorf("players = %+v, want one rider with 3 lives", state.Players)
	}
	if len(g.enemies) != 3 {
		t.Errorf("enemies = %d, want 3", len(g.enemies))
	}
	for _, e := range g.enemies {
		if e.Kind != KindBounder {
			t.Errorf("wave 1 enemy kind = %v", e.Kind)
		}
	}
	r := g.riders[0]
	if !r.Alive || !r.OnGround || r.Mount != MountOstrich {
		t.Errorf("rider = %+v", r)
	}
}

func TestGameModes(t *testing.T) {
	tests := []struct {
		id      string
		riders  int
		mount2  Mount
		modeStr string
	}{
		{GameID, 1, 0, "Solo"},
		{GameIDCoop, 2, MountStork, "Co-op"},
		{GameIDVersus, 2, MountStork, "Versus"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rg, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("registry: %v", err)
			}
			g, ok := rg.(*Game)
			if !ok {
				t.Fatalf("registry returned %T", rg)
			}
			if g.ID() != tt.id {
				t.Errorf("ID = %q, want %q", g.ID(), tt.id)
			}
			if g.Mode().String() != tt.modeStr {
				t.Errorf("mode = %v", g.Mode())
			}

			g = NewWithConfig(g.Mode(), config.DefaultJoustConfig())
			g.Reset(testRuntime())
			if len(g.riders) != tt.riders {
				t.Fatalf("riders = %d, want %d", len(g.riders), tt.riders)
			}
			if tt.riders == 2 && g.riders[1].Mount != tt.mount2 {
				t.Errorf("player 2 mount = %v", g.riders[1].Mount)
			}
		})
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.MultiInputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewMultiInputFrame()
		switch {
		case i%40 == 0:
			inputs[i].Set(core.Player1, core.ActionFlap)
		case i%200 < 100:
			inputs[i].Set(core.Player1, core.ActionRight)
		default:
			inputs[i].Set(core.Player1, core.ActionLeft)
		}
		if i%55 == 0 {
			inputs[i].Set(core.Player2, core.ActionFlap)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, multiplayer.MatchModeCoop)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("determinism failed: %d vs %d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick == 0 {
		t.Error("game did not advance")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)

	pause := core.NewMultiInputFrame()
	pause.Set(core.Player1, core.ActionPause)

	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("should be paused")
	}
	before := g.Snapshot()
	for range 10 {
		g.Step(core.NewMultiInputFrame())
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("simulation advanced while paused")
	}

	// Either player can unpause
	unpause := core.NewMultiInputFrame()
	unpause.Set(core.Player2, core.ActionPause)
	if g.Step(unpause).State.Paused {
		t.Error("should be unpaused")
	}
}

func TestRiderFlapAndSteer(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	r := g.riders[0]
	startY := r.Y

	in := core.NewMultiInputFrame()
	in.Set(core.Player1, core.ActionFlap)
	in.Set(core.Player1, core.ActionLeft)
	g.Step(in)

	if r.Y >= startY {
		t.Errorf("Y = %v, should rise from %v", r.Y, startY)
	}
	if r.VX >= 0 || r.FacingRight {
		t.Errorf("VX = %v, should move left", r.VX)
	}
}

// placeJoust puts the rider and a single enemy in contact.
func placeJoust(g *Game, riderY float64) (*Rider, *Enemy) {
	r := g.riders[0]
	r.X, r.Y, r.VX, r.VY = 20, riderY, 0, 0
	r.OnGround = false
	e := NewEnemy(KindBounder, 20, 15, g.cfg.Enemies, g.ai.NewBrain())
	g.enemies = []*Enemy{e}
	g.eggs = nil
	return r, e
}

func TestRiderWinsJoust(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r, e := placeJoust(g, 11.5)

	g.resolveJousts()

	if e.Active {
		t.Error("enemy should be unseated")
	}
	if r.Score != 250 {
		t.Errorf("score = %d, want 250", r.Score)
	}
	if len(g.eggs) != 1 || g.eggs[0].Kind != KindBounder {
		t.Fatalf("eggs = %+v, want one bounder egg", g.eggs)
	}
	if r.VY != -g.cfg.Physics.VictoryBounce {
		t.Errorf("VY = %v, want victory bounce", r.VY)
	}
	if !hasEvent(g.events, EventEnemyDefeated) {
		t.Error("missing enemy_defeated event")
	}
}

func TestEnemyWinsJoust(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r, e := placeJoust(g, 14.5)

	g.resolveJousts()

	if r.Alive {
		t.Fatal("rider should be unseated")
	}
	if r.Lives != 2 || r.RespawnTimer != g.cfg.Player.RespawnTicks {
		t.Errorf("lives=%d respawn=%d", r.Lives, r.RespawnTimer)
	}
	if !e.Active {
		t.Error("enemy should survive")
	}

	// Respawn after the timer with invincibility
	for range g.cfg.Player.RespawnTicks {
		g.updateRiders(core.NewMultiInputFrame())
	}
	if !r.Alive || r.InvincibleTimer != g.cfg.Player.InvincibleTicks {
		t.Errorf("alive=%v invincible=%d after respawn", r.Alive, r.InvincibleTimer)
	}
	if r.X != r.SpawnX || r.Y != r.SpawnY {
		t.Errorf("respawned at %v,%v, want %v,%v", r.X, r.Y, r.SpawnX, r.SpawnY)
	}
}

func TestJoustBounce(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r, e := placeJoust(g, 13)
	r.X = 18.5
	r.VX = 0.2
	e.VX = -0.1

	g.resolveJousts()

	if !r.Alive || !e.Active {
		t.Fatal("nobody should die on a bounce")
	}
	if r.VX != -0.2 || e.VX != 0.1 {
		t.Errorf("velocities = %v, %v; want reversed", r.VX, e.VX)
	}
}

func TestInvincibleRiderSkipsJoust(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r, e := placeJoust(g, 14.5)
	r.InvincibleTimer = 10

	g.resolveJousts()

	if !r.Alive || !e.Active {
		t.Error("invincible rider should not joust")
	}
}

func TestEggHatches(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	egg := &Egg{
		Body:       Body{X: 40, Y: float64(g.layout.FloorY) - 1, W: 1, H: 1, OnGround: true},
		Kind:       KindBounder,
		MaxBounces: 2,
		HatchTimer: 1,
		Active:     true,
	}
	g.eggs = []*Egg{egg}

	g.updateEggs()

	if egg.Active {
		t.Error("egg should be gone")
	}
	if len(g.enemies) != 1 || g.enemies[0].Kind != KindHunter {
		t.Fatalf("enemies = %+v, want one hunter", g.enemies)
	}
	if !g.wave.HatchedAny {
		t.Error("wave should record the hatch")
	}
	if !hasEvent(g.events, EventEggHatched) {
		t.Error("missing egg_hatched event")
	}
}

func TestEggBouncesThenRests(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	e := NewEnemy(KindBounder, 40, float64(g.layout.FloorY)-4, g.cfg.Enemies, Brain{})
	egg := NewEgg(e, 10000, g.cfg.Eggs)
	g.eggs = []*Egg{egg}

	for range 400 {
		g.updateEggs()
	}
	if egg.Bounces != g.cfg.Eggs.MaxBounces {
		t.Errorf("bounces = %d, want %d", egg.Bounces, g.cfg.Eggs.MaxBounces)
	}
	if !egg.Resting() || egg.Bottom() != float64(g.layout.FloorY) {
		t.Errorf("egg should rest on the floor, got Y=%v onGround=%v", egg.Y, egg.OnGround)
	}
}

func TestEggCollected(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	r := g.riders[0]
	egg := &Egg{
		Body:       Body{X: r.X + 1, Y: r.Y + 1, W: 1, H: 1},
		Kind:       KindBounder,
		HatchTimer: 100,
		Active:     true,
	}
	g.eggs = []*Egg{egg}

	g.updateEggs()

	if egg.Active {
		t.Error("egg should be collected")
	}
	if r.Score != g.cfg.Eggs.Points {
		t.Errorf("score = %d, want %d", r.Score, g.cfg.Eggs.Points)
	}
}

func TestEggLostInLava(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	egg := &Egg{
		Body:       Body{X: 40, Y: float64(g.layout.LavaY), W: 1, H: 1, VY: 0.3},
		Kind:       KindBounder,
		HatchTimer: 1,
		Active:     true,
	}
	g.eggs = []*Egg{egg}
	g.updateEggs()
	if egg.Active || g.wave.HatchedAny {
		t.Error("egg in lava should be destroyed without hatching")
	}
}

func TestWaveClearAndProgression(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r := g.riders[0]
	g.enemies = nil
	g.eggs = nil

	g.updateWave()

	if g.wave.Phase != PhaseIntermission {
		t.Fatalf("phase = %v, want intermission", g.wave.Phase)
	}
	if r.Score != g.cfg.Scoring.EggBonus {
		t.Errorf("score = %d, want egg bonus %d", r.Score, g.cfg.Scoring.EggBonus)
	}
	if !hasEvent(g.events, EventWaveCleared) || !hasEvent(g.events, EventBonus) {
		t.Errorf("events = %+v", g.events)
	}

	for range g.cfg.Waves.DelayTicks {
		g.updateWave()
	}

	if g.wave.Number != 2 || g.wave.Phase != PhaseActive {
		t.Fatalf("wave = %+v, want wave 2 active", g.wave)
	}
	if len(g.layout.Floor()) != 2 {
		t.Errorf("wave 2 floor sections = %d, want 2", len(g.layout.Floor()))
	}
	if len(g.enemies) != 4 {
		t.Errorf("wave 2 enemies = %d, want 4", len(g.enemies))
	}
	if r.InvincibleTimer == 0 {
		t.Error("rider should start a new wave invincible")
	}
}

func TestNoBonusAfterHatch(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	g.eggs = nil
	g.wave.HatchedAny = true

	g.updateWave()

	if g.riders[0].Score != 0 {
		t.Errorf("score = %d, want no bonus", g.riders[0].Score)
	}
	if g.wave.BonusPaid {
		t.Error("bonus should not be paid")
	}
}

func TestBonusOnlyForLiveRiders(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeCoop)
	g.enemies = nil
	g.eggs = nil
	down := g.riders[1]
	down.Alive = false
	down.RespawnTimer = g.cfg.Player.RespawnTicks

	g.updateWave()

	if g.riders[0].Score != g.cfg.Scoring.EggBonus {
		t.Errorf("live rider score = %d, want %d", g.riders[0].Score, g.cfg.Scoring.EggBonus)
	}
	if down.Score != 0 {
		t.Errorf("respawning rider score = %d, want 0", down.Score)
	}
	if !g.wave.BonusPaid {
		t.Error("bonus should be marked paid")
	}
}

func TestExtraLife(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r := g.riders[0]

	steps := []struct {
		points int
		lives  int
	}{
		{9900, 3},
		{200, 4},   // crossed 10000
		{9800, 4},  // 19900
		{200, 5},   // crossed 20000
		{20000, 7}, // crossed 30000 and 40000
	}
	for i, s := range steps {
		g.addScore(r, s.points)
		if r.Lives != s.lives {
			t.Errorf("step %d: lives = %d, want %d", i, r.Lives, s.lives)
		}
	}
}

func TestLavaKillsRider(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	r := g.riders[0]
	r.X, r.Y = 5, g.world.LavaY-1.5
	r.OnGround = false
	r.VY = 0.3

	g.updateRiders(core.NewMultiInputFrame())
	if r.Alive {
		t.Error("rider in lava should die")
	}
}

func TestInvincibleRiderThrownFromLava(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r := g.riders[0]
	r.X, r.Y = 5, g.world.LavaY-1.5
	r.OnGround = false
	r.VY = 0.3
	r.InvincibleTimer = 50

	g.updateRiders(core.NewMultiInputFrame())
	if !r.Alive || r.VY >= 0 {
		t.Errorf("alive=%v VY=%v, want thrown upward", r.Alive, r.VY)
	}
}

func TestGameOverSolo(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	r := g.riders[0]

	for range 3 {
		g.killRider(r)
		g.checkGameOver()
	}
	if !g.gameOver {
		t.Fatal("game should be over")
	}
	if r.RespawnTimer != 0 {
		t.Error("out rider should not respawn")
	}

	// Further steps are ignored
	before := g.Snapshot()
	g.Step(core.NewMultiInputFrame())
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("game advanced after game over")
	}
}

func TestCoopContinuesWhileOneRiderLeft(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeCoop)
	for range 3 {
		g.killRider(g.riders[0])
	}
	g.checkGameOver()
	if g.gameOver {
		t.Error("co-op should continue with one rider left")
	}
	g.riders[0].Score = 100
	g.riders[1].Score = 50
	if got := g.State().Score; got != 150 {
		t.Errorf("team score = %d, want 150", got)
	}
}

func TestCoopRidersBounce(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeCoop)
	g.enemies = nil
	a, b := g.riders[0], g.riders[1]
	a.X, a.Y = 20, 11.5
	b.X, b.Y = 21, 13

	g.resolveJousts()

	if !a.Alive || !b.Alive {
		t.Error("co-op riders should not unseat each other")
	}
	if a.Rect().Intersects(b.Rect()) {
		t.Error("riders should be pushed apart")
	}
}

func TestVersusJoust(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeVersus)
	g.enemies = nil
	a, b := g.riders[0], g.riders[1]
	a.X, a.Y = 20, 11.5
	b.X, b.Y = 21, 13

	g.resolveJousts()

	if !a.Alive || b.Alive {
		t.Fatalf("alive a=%v b=%v, want player 1 to win", a.Alive, b.Alive)
	}
	if a.Score != g.cfg.Scoring.PlayerDefeat {
		t.Errorf("winner score = %d, want %d", a.Score, g.cfg.Scoring.PlayerDefeat)
	}
	if !hasEvent(g.events, EventPlayerDefeated) {
		t.Error("missing player_defeated event")
	}
}

func TestVersusGameOverWinner(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeVersus)
	b := g.riders[1]
	for range g.cfg.Player.Lives {
		g.killRider(b)
	}
	g.checkGameOver()

	state := g.State()
	if !state.GameOver {
		t.Fatal("versus should end when a rider is out")
	}
	if state.Winner != core.Player1 {
		t.Errorf("winner = %v, want P1", state.Winner)
	}
	if state.Score != g.riders[0].Score {
		t.Errorf("versus score should be player 1's")
	}
}

func TestPterodactylSpawns(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.wave.PteroTimer = 1

	g.updatePterodactyl()

	if g.ptero == nil || !g.ptero.Active {
		t.Fatal("pterodactyl should spawn")
	}
	if !hasEvent(g.events, EventPterodactylSpawned) {
		t.Error("missing pterodactyl_spawned event")
	}
	if g.ptero.X != -g.ptero.W && g.ptero.X != float64(g.layout.Width) {
		t.Errorf("pterodactyl should enter from an edge, X=%v", g.ptero.X)
	}
}

func TestPterodactylTimerNeedsEnemies(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	g.enemies = nil
	g.wave.PteroTimer = 1
	g.updatePterodactyl()
	if g.ptero != nil {
		t.Error("no pterodactyl once the enemies are gone")
	}
}

func placePterodactyl(g *Game) *Pterodactyl {
	p := NewPterodactyl(true, 8, float64(g.layout.Width), g.cfg.Enemies.SpeedScale, g.cfg.Pterodactyl)
	p.X = 30
	g.ptero = p
	return p
}

func TestPterodactylMouthHit(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	placePterodactyl(g)
	r := g.riders[0]
	r.X, r.Y = 32, 6.6

	g.collidePterodactyl()

	if g.ptero != nil {
		t.Fatal("pterodactyl should be defeated")
	}
	if r.Score != g.cfg.Pterodactyl.Points || !r.Alive {
		t.Errorf("score=%d alive=%v", r.Score, r.Alive)
	}
	if g.wave.PteroTimer <= 0 {
		t.Error("timer should restart")
	}
}

func TestPterodactylKillsOtherwise(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"from above, missing the mouth", 27.5, 6.6},
		{"level", 31, 8},
		{"from below", 32, 9.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, multiplayer.MatchModeSolo)
			placePterodactyl(g)
			r := g.riders[0]
			r.X, r.Y = tt.x, tt.y

			g.collidePterodactyl()

			if r.Alive {
				t.Error("rider should die")
			}
			if g.ptero == nil {
				t.Error("pterodactyl should survive")
			}
		})
	}
}

func TestStartWave(t *testing.T) {
	SetStartWave(7)
	defer SetStartWave(1)

	g := newTestGame(t, multiplayer.MatchModeSolo)
	if g.wave.Number != 7 {
		t.Errorf("wave = %d, want 7", g.wave.Number)
	}
	if len(g.enemies) != CompositionFor(7, g.cfg.Waves.Table).Total() {
		t.Errorf("enemies = %d", len(g.enemies))
	}
	if len(g.layout.Floor()) != 5 {
		t.Errorf("floor sections = %d, want 5", len(g.layout.Floor()))
	}
}

func TestDifficultyPresetFixed(t *testing.T) {
	if err := SetDifficultyPreset("fixed"); err != nil {
		t.Fatalf("SetDifficultyPreset(fixed) failed: %v", err)
	}
	defer SetDifficultyPreset("")

	if err := SetDifficultyPreset("hrad"); err == nil {
		t.Error("unknown preset should be rejected")
	}

	g := New(multiplayer.MatchModeSolo)
	g.Reset(testRuntime())
	if g.Config().Difficulty.Enabled || g.difficulty.IsEnabled() {
		t.Error("fixed preset should stop difficulty progression")
	}
	if g.difficulty.Level(1, 0) != g.difficulty.Level(15, 0) {
		t.Error("difficulty level should not change between waves")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := NewWithConfig(multiplayer.MatchModeSolo, config.DefaultJoustConfig())
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 30, 12
	g.Reset(rt)

	res := g.Step(core.NewMultiInputFrame())
	if g.tick != 0 || res.State.GameOver {
		t.Error("small screen should not simulate")
	}

	screen := core.NewScreen(30, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeCoop)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"P1", "P2", "WAVE 1"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if c := screen.GetCell(0, 23); c.Rune != LavaChar && c.Rune != LavaWave {
		t.Errorf("bottom row should be lava, got %q", c.Rune)
	}
	if c := screen.GetCell(0, g.layout.FloorY); c.Rune != PlatformChar {
		t.Errorf("floor row should be drawn, got %q", c.Rune)
	}
	r := g.riders[0]
	if c := screen.GetCell(int(r.X)+1, int(r.Y)); c.Rune != 'o' || c.Color != core.ColorBrightYellow {
		t.Errorf("rider head cell = %+v", c)
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeVersus)
	for range g.cfg.Player.Lives {
		g.killRider(g.riders[0])
	}
	g.checkGameOver()

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "P2 WINS") {
		t.Errorf("expected winner banner:\n%s", screen.String())
	}
}

func TestStateEventsCarryWave(t *testing.T) {
	g := newTestGame(t, multiplayer.MatchModeSolo)
	placeJoust(g, 11.5)
	g.resolveJousts()
	for _, e := range g.events {
		if e.Wave != 1 {
			t.Errorf("event %+v should carry wave 1", e)
		}
	}
}
