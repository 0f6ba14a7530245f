// Package config provides YAML-based game configuration loading and
// difficulty management for the joust platform.
package config

import (
	"errors"
	"fmt"
)

// JoustConfig contains all tunables for the game.
// Distances are terminal cells, times are simulation ticks (60 per second).
type JoustConfig struct {
	Physics     JoustPhysics     `yaml:"physics"`
	Player      JoustPlayer      `yaml:"player"`
	Enemies     JoustEnemies     `yaml:"enemies"`
	Pterodactyl JoustPterodactyl `yaml:"pterodactyl"`
	Eggs        JoustEggs        `yaml:"eggs"`
	AI          JoustAI          `yaml:"ai"`
	Scoring     JoustScoring     `yaml:"scoring"`
	Waves       JoustWaves       `yaml:"waves"`
	Layout      JoustLayout      `yaml:"layout"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// JoustPhysics defines the flight model.
type JoustPhysics struct {
	Gravity            float64 `yaml:"gravity"`
	FlapImpulse        float64 `yaml:"flap_impulse"`
	MaxVerticalSpeed   float64 `yaml:"max_vertical_speed"`
	HorizontalAccel    float64 `yaml:"horizontal_accel"`
	HorizontalDecel    float64 `yaml:"horizontal_decel"`
	AirControl         float64 `yaml:"air_control"`
	MaxHorizontalSpeed float64 `yaml:"max_horizontal_speed"`
	LandingTolerance   float64 `yaml:"landing_tolerance"`
	SubstepThreshold   float64 `yaml:"substep_threshold"`
	VictoryBounce      float64 `yaml:"victory_bounce"`
}

// JoustPlayer defines rider parameters.
type JoustPlayer struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Lives           int     `yaml:"lives"`
	RespawnTicks    int     `yaml:"respawn_ticks"`
	InvincibleTicks int     `yaml:"invincible_ticks"`
}

// EnemyStats are the per-kind speed and reward.
type EnemyStats struct {
	Speed  float64 `yaml:"speed"`
	Points int     `yaml:"points"`
}

// JoustEnemies defines the mounted enemy knights.
type JoustEnemies struct {
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	SpeedScale  float64    `yaml:"speed_scale"` // Converts the stat speeds to cells per tick
	Bounder     EnemyStats `yaml:"bounder"`
	Hunter      EnemyStats `yaml:"hunter"`
	ShadowLord  EnemyStats `yaml:"shadow_lord"`
	GravityMult float64    `yaml:"gravity_mult"`
	FlapMult    float64    `yaml:"flap_mult"`
}

// JoustPterodactyl defines the hunter that appears when a wave drags on.
type JoustPterodactyl struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	Points     int     `yaml:"points"`
	SpawnTicks int     `yaml:"spawn_ticks"`
	MouthW     float64 `yaml:"mouth_w"`
	MouthH     float64 `yaml:"mouth_h"`
}

// JoustEggs defines eggs left behind by unseated knights.
type JoustEggs struct {
	Size        float64 `yaml:"size"`
	Points      int     `yaml:"points"`
	HatchTicks  int     `yaml:"hatch_ticks"`
	MaxBounces  int     `yaml:"max_bounces"`
	Bounce      float64 `yaml:"bounce"` // Fraction of impact speed kept on bounce
	GravityMult float64 `yaml:"gravity_mult"`
	DropSpeed   float64 `yaml:"drop_speed"`
}

// JoustAI defines enemy behaviour timings and probabilities.
type JoustAI struct {
	FlapMin          int     `yaml:"flap_min"`
	FlapMax          int     `yaml:"flap_max"`
	TurnMin          int     `yaml:"turn_min"`
	TurnMax          int     `yaml:"turn_max"`
	DashMin          int     `yaml:"dash_min"`
	DashMax          int     `yaml:"dash_max"`
	DashTicks        int     `yaml:"dash_ticks"`
	DashBoost        float64 `yaml:"dash_boost"`
	AggressionMin    float64 `yaml:"aggression_min"`
	AggressionMax    float64 `yaml:"aggression_max"`
	ErraticMin       float64 `yaml:"erratic_min"`
	ErraticMax       float64 `yaml:"erratic_max"`
	ChaseClimbMargin float64 `yaml:"chase_climb_margin"`
	ChaseFlapChance  float64 `yaml:"chase_flap_chance"`
	PursueBand       float64 `yaml:"pursue_band"`
	HoldFlapChance   float64 `yaml:"hold_flap_chance"`
	LavaMargin       float64 `yaml:"lava_margin"`
}

// JoustScoring defines rewards that are not tied to a single entity.
type JoustScoring struct {
	ExtraLifeEvery int `yaml:"extra_life_every"`
	EggBonus       int `yaml:"egg_bonus"`
	PlayerDefeat   int `yaml:"player_defeat"`
}

// WaveEntry is the enemy mix for one wave.
type WaveEntry struct {
	Bounders    int `yaml:"bounders"`
	Hunters     int `yaml:"hunters"`
	ShadowLords int `yaml:"shadow_lords"`
}

// JoustWaves defines wave composition and pacing.
type JoustWaves struct {
	DelayTicks  int         `yaml:"delay_ticks"`
	BannerTicks int         `yaml:"banner_ticks"`
	Table       []WaveEntry `yaml:"table"`
}

// Ledge is a fixed platform, expressed as fractions of the playfield.
type Ledge struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
}

// Section is one piece of the bottom row, as fractions of the width.
type Section struct {
	X float64 `yaml:"x"`
	W float64 `yaml:"w"`
}

// BottomLayout is the bottom row used from the given wave onward.
type BottomLayout struct {
	Wave     int       `yaml:"wave"`
	Sections []Section `yaml:"sections"`
}

// JoustLayout defines the arena geometry.
type JoustLayout struct {
	MinWidth  int            `yaml:"min_width"`
	MinHeight int            `yaml:"min_height"`
	LavaRows  int            `yaml:"lava_rows"`
	BottomGap int            `yaml:"bottom_gap"` // Empty rows between bottom row and lava
	Ledges    []Ledge        `yaml:"ledges"`
	Bottom    []BottomLayout `yaml:"bottom"`
}

// Validate rejects configurations the simulation cannot run with.
func (c JoustConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.flap_impulse", c.Physics.FlapImpulse)
	positive("physics.max_vertical_speed", c.Physics.MaxVerticalSpeed)
	positive("physics.horizontal_accel", c.Physics.HorizontalAccel)
	positive("physics.horizontal_decel", c.Physics.HorizontalDecel)
	positive("physics.air_control", c.Physics.AirControl)
	positive("physics.max_horizontal_speed", c.Physics.MaxHorizontalSpeed)
	positive("physics.landing_tolerance", c.Physics.LandingTolerance)
	positive("physics.substep_threshold", c.Physics.SubstepThreshold)
	positive("physics.victory_bounce", c.Physics.VictoryBounce)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("enemies.width", c.Enemies.Width)
	positive("enemies.height", c.Enemies.Height)
	positive("enemies.speed_scale", c.Enemies.SpeedScale)
	positive("eggs.size", c.Eggs.Size)

	if c.Player.Lives < 1 {
		errs = append(errs, fmt.Errorf("player.lives must be at least 1, got %d", c.Player.Lives))
	}
	if len(c.Waves.Table) == 0 {
		errs = append(errs, errors.New("waves.table must list at least one wave"))
	}
	if len(c.Layout.Bottom) == 0 {
		errs = append(errs, errors.New("layout.bottom must list at least one layout"))
	}
	for i, b := range c.Layout.Bottom {
		if b.Wave < 1 {
			errs = append(errs, fmt.Errorf("layout.bottom[%d].wave must be >= 1", i))
		}
		if i > 0 && b.Wave <= c.Layout.Bottom[i-1].Wave {
			errs = append(errs, fmt.Errorf("layout.bottom must be sorted by wave (entry %d)", i))
		}
	}
	if c.AI.FlapMin > c.AI.FlapMax || c.AI.TurnMin > c.AI.TurnMax || c.AI.DashMin > c.AI.DashMax {
		errs = append(errs, errors.New("ai timer ranges must have min <= max"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid joust config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Wave/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier      float64 `yaml:"speed_multiplier"`      // Added to enemy speed multiplier
	HatchReduction       int     `yaml:"hatch_reduction"`       // Ticks removed from egg hatch time
	PterodactylReduction int     `yaml:"pterodactyl_reduction"` // Ticks removed from pterodactyl timer
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. The empty string means no
// preset; unknown names are an error.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyJoustPreset modifies the config based on a difficulty preset.
func ApplyJoustPreset(cfg *JoustConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Pterodactyl.SpawnTicks += cfg.Pterodactyl.SpawnTicks / 2
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Eggs.HatchTicks -= cfg.Eggs.HatchTicks / 4
	}
}
