// Package joust implements a Joust-style arcade game.
// Knights on flying mounts joust above a lava pit: when two riders collide,
// the one whose lance is higher unseats the other.
package joust

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/registry"
)

// Registry ids, one per match mode.
const (
	GameID       = "joust"
	GameIDCoop   = "joust_coop"
	GameIDVersus = "joust_versus"
)

// Event kinds reported in StepResult.Events.
const (
	EventLanded              = "landed"
	EventEnemyDefeated       = "enemy_defeated"
	EventRiderDied           = "rider_died"
	EventRiderRespawned      = "rider_respawned"
	EventPlayerDefeated      = "player_defeated"
	EventEggCollected        = "egg_collected"
	EventEggHatched          = "egg_hatched"
	EventWaveStarted         = "wave_started"
	EventWaveCleared         = "wave_cleared"
	EventBonus               = "bonus"
	EventPterodactylSpawned  = "pterodactyl_spawned"
	EventPterodactylDefeated = "pterodactyl_defeated"
	EventExtraLife           = "extra_life"
	EventGameOver            = "game_over"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startWave is the wave new games begin on
var startWave = 1

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard",
// "fixed"). Unknown names are rejected and leave the preset unchanged.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetStartWave sets the wave new games begin on.
func SetStartWave(wave int) {
	startWave = max(wave, 1)
}

// Game implements the joust game logic for all match modes.
type Game struct {
	mode  multiplayer.MatchMode
	fixed *config.JoustConfig // Set by NewWithConfig; skips file loading

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.JoustConfig
	difficulty *config.DifficultyManager

	// Simulation
	rng     *rand.Rand
	physics Physics
	ai      *AI
	layout  Layout
	world   World

	// Entities
	riders  []*Rider
	enemies []*Enemy
	eggs    []*Egg
	ptero   *Pterodactyl

	// Game state
	wave           Wave
	tick           int
	paused         bool
	gameOver       bool
	winner         core.PlayerID
	screenTooSmall bool
	events         []core.Event
}

// New creates a game for the given mode. Configuration is loaded on Reset.
func New(mode multiplayer.MatchMode) *Game {
	return &Game{mode: mode}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(mode multiplayer.MatchMode, cfg config.JoustConfig) *Game {
	return &Game{mode: mode, fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.mode {
	case multiplayer.MatchModeCoop:
		return GameIDCoop
	case multiplayer.MatchModeVersus:
		return GameIDVersus
	default:
		return GameID
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case multiplayer.MatchModeCoop:
		return "Joust (2P Co-op)"
	case multiplayer.MatchModeVersus:
		return "Joust (2P Versus)"
	default:
		return "Joust"
	}
}

// Mode returns the match mode.
func (g *Game) Mode() multiplayer.MatchMode {
	return g.mode
}

// Config returns the configuration in use since the last Reset.
func (g *Game) Config() config.JoustConfig {
	return g.cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.fixed != nil {
		g.cfg = *g.fixed
	} else {
		cfg, err := config.LoadJoust(configPath)
		if err != nil {
			cfg = config.DefaultJoustConfig()
		}
		config.ApplyJoustPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- deterministic game RNG
	g.physics = NewPhysics(g.cfg.Physics)
	g.ai = NewAI(g.cfg.AI, g.rng)

	g.screenTooSmall = runtime.ScreenW < g.cfg.Layout.MinWidth || runtime.ScreenH < g.cfg.Layout.MinHeight

	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.winner = 0
	g.events = nil

	g.riders = g.riders[:0]
	for i := range g.mode.Players() {
		id := core.PlayerID(i + 1)
		mount := MountOstrich
		if id == core.Player2 {
			mount = MountStork
		}
		g.riders = append(g.riders, &Rider{
			Body:  Body{W: g.cfg.Player.Width, H: g.cfg.Player.Height},
			ID:    id,
			Mount: mount,
			Lives: g.cfg.Player.Lives,
			Alive: true,
		})
	}

	g.beginWave(startWave)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	g.events = nil

	if g.screenTooSmall || g.gameOver {
		return g.result()
	}

	// Handle pause toggle
	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tick++

	g.updateRiders(in)
	g.updateEnemies()
	g.resolveJousts()
	g.updateEggs()
	g.updatePterodactyl()
	g.updateWave()
	g.checkGameOver()

	return g.result()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
		Wave:     g.wave.Number,
		Winner:   g.winner,
	}
	for _, r := range g.riders {
		state.Players = append(state.Players, core.PlayerState{ID: r.ID, Score: r.Score, Lives: r.Lives})
		if g.mode != multiplayer.MatchModeVersus || r.ID == core.Player1 {
			state.Score += r.Score
		}
	}
	return state
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) emit(kind string, player core.PlayerID, points int) {
	g.events = append(g.events, core.Event{Kind: kind, Player: player, Points: points, Wave: g.wave.Number})
}

// speedMult returns the current enemy speed multiplier.
func (g *Game) speedMult() float64 {
	return g.difficulty.Speed(1.0, g.wave.Number, g.tick)
}

// beginWave builds the wave's layout, places the riders and spawns enemies.
func (g *Game) beginWave(number int) {
	g.wave = Wave{
		Number:      number,
		Composition: CompositionFor(number, g.cfg.Waves.Table),
		Phase:       PhaseActive,
		BannerTimer: g.cfg.Waves.BannerTicks,
		PteroTimer:  g.difficulty.PterodactylTicks(g.cfg.Pterodactyl.SpawnTicks, number, g.tick),
	}

	g.layout = BuildLayout(number, g.runtime.ScreenW, g.runtime.ScreenH, g.cfg.Layout)
	g.world = g.layout.World()

	g.enemies = g.enemies[:0]
	g.eggs = g.eggs[:0]
	g.ptero = nil

	// The bottom row may change under the riders, so everyone still
	// in the game starts the wave back on the spawn ledge.
	for _, r := range g.riders {
		r.SpawnX, r.SpawnY = g.layout.PlayerSpawn(r.ID, r.W, r.H)
		if r.Alive {
			g.placeAtSpawn(r)
			if number > startWave {
				r.InvincibleTimer = g.cfg.Player.InvincibleTicks
			}
		}
	}

	for _, kind := range g.wave.Composition.Kinds() {
		g.spawnEnemy(kind)
	}

	g.emit(EventWaveStarted, 0, 0)
}

func (g *Game) placeAtSpawn(r *Rider) {
	r.X, r.Y = r.SpawnX, r.SpawnY
	r.VX, r.VY = 0, 0
	r.OnGround = true
	r.FacingRight = r.ID != core.Player2
}

// spawnEnemy places a new enemy at a random spot on a spawn ledge.
func (g *Game) spawnEnemy(kind EnemyKind) {
	spawns := g.layout.EnemySpawns()
	w := g.cfg.Enemies.Width

	var x, bottom float64
	if len(spawns) == 0 {
		x = g.rng.Float64() * math.Max(0, float64(g.layout.Width)-w)
		bottom = float64(g.layout.Top) + g.cfg.Enemies.Height
	} else {
		p := spawns[g.rng.Intn(len(spawns))].Rect
		x = p.X + g.rng.Float64()*math.Max(0, p.W-w)
		bottom = p.Y
	}

	e := NewEnemy(kind, x, bottom, g.cfg.Enemies, g.ai.NewBrain())
	e.OnGround = len(spawns) > 0
	dir := 1.0
	if g.rng.Intn(2) == 0 {
		dir = -1
	}
	e.VX = dir * e.Speed * g.speedMult() * 0.5
	e.FacingRight = dir > 0
	g.enemies = append(g.enemies, e)
}

// updateRiders handles respawn, input, movement and lava for each rider.
func (g *Game) updateRiders(in core.MultiInputFrame) {
	for _, r := range g.riders {
		if !r.Alive {
			if r.Lives > 0 && r.RespawnTimer > 0 {
				r.RespawnTimer--
				if r.RespawnTimer == 0 {
					g.respawn(r)
				}
			}
			continue
		}

		if r.InvincibleTimer > 0 {
			r.InvincibleTimer--
		}

		frame := in.Player(r.ID)
		dir := 0
		if frame.Has(core.ActionLeft) {
			dir--
		}
		if frame.Has(core.ActionRight) {
			dir++
		}
		if frame.Has(core.ActionFlap) {
			g.physics.Flap(&r.Body, 1, 1)
		}

		g.physics.ApplyGravity(&r.Body, 1)
		g.physics.Steer(&r.Body, dir, frame.Has(core.ActionBrake))
		if res := g.physics.Move(&r.Body, &g.world, true); res.Landed {
			g.emit(EventLanded, r.ID, 0)
		}

		if g.world.InLava(&r.Body) {
			if r.InvincibleTimer > 0 {
				// Freshly spawned riders are thrown clear instead.
				r.Y = g.world.LavaY - r.H
				r.VY = -g.cfg.Physics.FlapImpulse
				r.OnGround = false
				continue
			}
			g.killRider(r)
		}
	}
}

func (g *Game) respawn(r *Rider) {
	r.Alive = true
	g.placeAtSpawn(r)
	r.InvincibleTimer = g.cfg.Player.InvincibleTicks
	g.emit(EventRiderRespawned, r.ID, 0)
}

func (g *Game) killRider(r *Rider) {
	r.Alive = false
	r.Lives--
	r.VX, r.VY = 0, 0
	r.OnGround = false
	r.RespawnTimer = 0
	if r.Lives > 0 {
		r.RespawnTimer = g.cfg.Player.RespawnTicks
	}
	g.emit(EventRiderDied, r.ID, 0)
}

// addScore credits points and grants a life per extra-life threshold crossed.
func (g *Game) addScore(r *Rider, points int) {
	before := r.Score
	r.Score += points
	if every := g.cfg.Scoring.ExtraLifeEvery; every > 0 {
		if gained := r.Score/every - before/every; gained > 0 {
			r.Lives += gained
			g.emit(EventExtraLife, r.ID, 0)
		}
	}
}

// targets returns the boxes of riders the AI may attack.
func (g *Game) targets() []core.RectF {
	var out []core.RectF
	for _, r := range g.riders {
		if r.Alive {
			out = append(out, r.Rect())
		}
	}
	return out
}

// updateEnemies runs AI and physics for each enemy knight.
func (g *Game) updateEnemies() {
	targets := g.targets()
	mult := g.speedMult()

	for _, e := range g.enemies {
		if !e.Active {
			continue
		}

		intent := g.ai.Think(e, targets, g.world.LavaY, mult)
		e.VX = intent.VX
		switch {
		case intent.Evade:
			e.VY = -g.cfg.Physics.FlapImpulse
			e.OnGround = false
		case intent.Flap:
			g.physics.Flap(&e.Body, g.cfg.Enemies.FlapMult, 0.8)
		}
		if intent.Dive {
			g.physics.Dive(&e.Body, 2)
		}

		g.physics.ApplyGravity(&e.Body, g.cfg.Enemies.GravityMult)
		g.physics.Move(&e.Body, &g.world, true)

		// Sunk without a fight: no points.
		if g.world.Submerged(&e.Body) {
			e.Active = false
		}
	}
}

// resolveJousts settles rider-enemy and rider-rider collisions.
func (g *Game) resolveJousts() {
	for _, r := range g.riders {
		for _, e := range g.enemies {
			if !r.Collidable() {
				break
			}
			if !e.Active {
				continue
			}
			switch Resolve(r.Rect(), e.Rect()) {
			case AWins:
				g.defeatEnemy(r, e)
			case BWins:
				g.killRider(r)
			case Bounce:
				Separate(&r.Body, &e.Body)
			}
		}
	}

	if len(g.riders) < 2 {
		return
	}
	a, b := g.riders[0], g.riders[1]
	if !a.Collidable() || !b.Collidable() {
		return
	}
	outcome := Resolve(a.Rect(), b.Rect())
	if outcome == NoContact {
		return
	}
	if g.mode != multiplayer.MatchModeVersus || outcome == Bounce {
		Separate(&a.Body, &b.Body)
		return
	}

	winner, loser := a, b
	if outcome == BWins {
		winner, loser = b, a
	}
	g.addScore(winner, g.cfg.Scoring.PlayerDefeat)
	winner.VY = -g.cfg.Physics.VictoryBounce
	winner.OnGround = false
	g.killRider(loser)
	g.emit(EventPlayerDefeated, winner.ID, g.cfg.Scoring.PlayerDefeat)
}

func (g *Game) defeatEnemy(r *Rider, e *Enemy) {
	e.Active = false
	hatch := g.difficulty.HatchTicks(g.cfg.Eggs.HatchTicks, g.wave.Number, g.tick)
	g.eggs = append(g.eggs, NewEgg(e, hatch, g.cfg.Eggs))

	g.addScore(r, e.Points)
	r.VY = -g.cfg.Physics.VictoryBounce
	r.OnGround = false
	g.emit(EventEnemyDefeated, r.ID, e.Points)
}

// updateEggs moves eggs, lets riders collect them and hatches the rest.
func (g *Game) updateEggs() {
	for _, egg := range g.eggs {
		if !egg.Active {
			continue
		}
		hatched := egg.Update(g.physics, &g.world, g.cfg.Eggs)
		if !hatched && !egg.Active {
			continue // Lost in the lava
		}

		if r := g.collector(egg); r != nil {
			egg.Active = false
			g.addScore(r, g.cfg.Eggs.Points)
			g.emit(EventEggCollected, r.ID, g.cfg.Eggs.Points)
			continue
		}
		if hatched {
			g.hatch(egg)
		}
	}
}

func (g *Game) collector(egg *Egg) *Rider {
	for _, r := range g.riders {
		if r.Alive && r.Rect().Intersects(egg.Rect()) {
			return r
		}
	}
	return nil
}

// hatch turns an egg into the next stronger enemy kind.
func (g *Game) hatch(egg *Egg) {
	kind := egg.Kind.Next()
	e := NewEnemy(kind, egg.CenterX()-g.cfg.Enemies.Width/2, egg.Bottom(), g.cfg.Enemies, g.ai.NewBrain())
	e.VY = -g.cfg.Physics.FlapImpulse / 2
	dir := 1.0
	if g.rng.Intn(2) == 0 {
		dir = -1
	}
	e.VX = dir * e.Speed * g.speedMult() * 0.5
	e.FacingRight = dir > 0
	g.enemies = append(g.enemies, e)

	g.wave.HatchedAny = true
	g.emit(EventEggHatched, 0, 0)
}

// updatePterodactyl counts down to a pterodactyl and runs the one in play.
func (g *Game) updatePterodactyl() {
	if p := g.ptero; p != nil {
		intent := g.ai.ThinkPterodactyl(p, g.targets(), g.speedMult())
		p.VX = intent.VX
		if intent.Flap {
			g.physics.Flap(&p.Body, g.cfg.Enemies.FlapMult, 0.8)
		}
		g.physics.ApplyGravity(&p.Body, g.cfg.Enemies.GravityMult)
		g.physics.Move(&p.Body, &g.world, false)

		if g.world.InLava(&p.Body) {
			g.removePterodactyl()
			return
		}
		g.collidePterodactyl()
		return
	}

	if g.wave.Phase != PhaseActive || g.activeEnemies() == 0 {
		return
	}
	g.wave.PteroTimer--
	if g.wave.PteroTimer <= 0 {
		g.spawnPterodactyl()
	}
}

// collidePterodactyl kills riders that touch the pterodactyl, unless the
// rider is above it and hits the open mouth.
func (g *Game) collidePterodactyl() {
	p := g.ptero
	for _, r := range g.riders {
		if !r.Collidable() || !r.Rect().Intersects(p.Rect()) {
			continue
		}
		if IsAbove(r.Rect(), p.Rect()) && r.Rect().Intersects(p.Mouth()) {
			g.addScore(r, p.Points)
			r.VY = -g.cfg.Physics.VictoryBounce
			r.OnGround = false
			g.emit(EventPterodactylDefeated, r.ID, p.Points)
			g.removePterodactyl()
			return
		}
		g.killRider(r)
	}
}

func (g *Game) spawnPterodactyl() {
	fromLeft := g.rng.Intn(2) == 0
	span := math.Max(1, float64(g.layout.FloorY-g.layout.Top)/2-g.cfg.Pterodactyl.Height)
	y := float64(g.layout.Top) + g.rng.Float64()*span
	g.ptero = NewPterodactyl(fromLeft, y, float64(g.layout.Width), g.cfg.Enemies.SpeedScale, g.cfg.Pterodactyl)
	g.emit(EventPterodactylSpawned, 0, 0)
}

func (g *Game) removePterodactyl() {
	if g.ptero != nil {
		g.ptero.Active = false
	}
	g.ptero = nil
	g.wave.PteroTimer = g.difficulty.PterodactylTicks(g.cfg.Pterodactyl.SpawnTicks, g.wave.Number, g.tick)
}

func (g *Game) activeEnemies() int {
	n := 0
	for _, e := range g.enemies {
		if e.Active {
			n++
		}
	}
	return n
}

// compact drops inactive enemies and eggs.
func (g *Game) compact() {
	enemies := g.enemies[:0]
	for _, e := range g.enemies {
		if e.Active {
			enemies = append(enemies, e)
		}
	}
	g.enemies = enemies

	eggs := g.eggs[:0]
	for _, egg := range g.eggs {
		if egg.Active {
			eggs = append(eggs, egg)
		}
	}
	g.eggs = eggs
}

// updateWave clears finished waves and starts the next after the delay.
func (g *Game) updateWave() {
	switch g.wave.Phase {
	case PhaseActive:
		g.wave.Ticks++
		if g.wave.BannerTimer > 0 {
			g.wave.BannerTimer--
		}
		g.compact()
		if len(g.enemies) == 0 && len(g.eggs) == 0 {
			g.clearWave()
		}

	case PhaseIntermission:
		g.wave.DelayTimer--
		if g.wave.DelayTimer <= 0 {
			g.beginWave(g.wave.Number + 1)
		}
	}
}

func (g *Game) clearWave() {
	if g.ptero != nil {
		g.ptero.Active = false
		g.ptero = nil
	}

	if !g.wave.HatchedAny {
		for _, r := range g.riders {
			if r.Alive {
				g.addScore(r, g.cfg.Scoring.EggBonus)
				g.emit(EventBonus, r.ID, g.cfg.Scoring.EggBonus)
			}
		}
		g.wave.BonusPaid = true
	}

	g.wave.Phase = PhaseIntermission
	g.wave.DelayTimer = g.cfg.Waves.DelayTicks
	g.emit(EventWaveCleared, 0, 0)
}

// checkGameOver ends co-op and solo games when every rider is out, and
// versus games as soon as one rider is out.
func (g *Game) checkGameOver() {
	out := 0
	for _, r := range g.riders {
		if r.Out() {
			out++
		}
	}

	if g.mode == multiplayer.MatchModeVersus {
		if out == 0 {
			return
		}
		g.gameOver = true
		g.winner = g.versusWinner()
	} else if out == len(g.riders) {
		g.gameOver = true
	}

	if g.gameOver {
		g.emit(EventGameOver, g.winner, 0)
	}
}

// versusWinner picks the rider still in the game, or the higher score
// when both went out together. Returns 0 for a draw.
func (g *Game) versusWinner() core.PlayerID {
	a, b := g.riders[0], g.riders[1]
	switch {
	case a.Out() && !b.Out():
		return b.ID
	case b.Out() && !a.Out():
		return a.ID
	case a.Score > b.Score:
		return a.ID
	case b.Score > a.Score:
		return b.ID
	default:
		return 0
	}
}

// Tick returns the number of simulated ticks since Reset.
func (g *Game) Tick() int {
	return g.tick
}

// Wave returns the current wave.
func (g *Game) Wave() Wave {
	return g.wave
}

// Layout returns the current wave's arena geometry.
func (g *Game) Layout() Layout {
	return g.layout
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New(multiplayer.MatchModeSolo)
	})
	registry.Register(GameIDCoop, func() registry.Game {
		return New(multiplayer.MatchModeCoop)
	})
	registry.Register(GameIDVersus, func() registry.Game {
		return New(multiplayer.MatchModeVersus)
	})
}
