package config

import (
	_ "embed"
)

//go:embed defaults/joust.yaml
var defaultJoustYAML []byte

// DefaultJoustConfig returns the built-in configuration used when no YAML
// source can be read.
func DefaultJoustConfig() JoustConfig {
	return JoustConfig{
		Physics: JoustPhysics{
			Gravity:            0.0167,
			FlapImpulse:        0.32,
			MaxVerticalSpeed:   0.5,
			HorizontalAccel:    0.02,
			HorizontalDecel:    0.008,
			AirControl:         0.7,
			MaxHorizontalSpeed: 0.45,
			LandingTolerance:   0.6,
			SubstepThreshold:   0.5,
			VictoryBounce:      0.25,
		},
		Player: JoustPlayer{
			Width:           3,
			Height:          2,
			Lives:           3,
			RespawnTicks:    90,
			InvincibleTicks: 125,
		},
		Enemies: JoustEnemies{
			Width:       3,
			Height:      2,
			SpeedScale:  0.06,
			GravityMult: 0.8,
			FlapMult:    0.7,
			Bounder:     EnemyStats{Speed: 3, Points: 250},
			Hunter:      EnemyStats{Speed: 4.5, Points: 500},
			ShadowLord:  EnemyStats{Speed: 6, Points: 1500},
		},
		Pterodactyl: JoustPterodactyl{
			Width:      4,
			Height:     2,
			Speed:      7,
			Points:     1000,
			SpawnTicks: 1875,
			MouthW:     2,
			MouthH:     1,
		},
		Eggs: JoustEggs{
			Size:        1,
			Points:      500,
			HatchTicks:  625,
			MaxBounces:  2,
			Bounce:      0.5,
			GravityMult: 1.2,
			DropSpeed:   0.1,
		},
		AI: JoustAI{
			FlapMin:          30,
			FlapMax:          60,
			TurnMin:          60,
			TurnMax:          180,
			DashMin:          120,
			DashMax:          240,
			DashTicks:        30,
			DashBoost:        1.5,
			AggressionMin:    0.6,
			AggressionMax:    0.9,
			ErraticMin:       0.7,
			ErraticMax:       1.0,
			ChaseClimbMargin: 3,
			ChaseFlapChance:  0.3,
			PursueBand:       1,
			HoldFlapChance:   0.2,
			LavaMargin:       1,
		},
		Scoring: JoustScoring{
			ExtraLifeEvery: 10000,
			EggBonus:       2000,
			PlayerDefeat:   1000,
		},
		Waves: JoustWaves{
			DelayTicks:  187,
			BannerTicks: 120,
			Table: []WaveEntry{
				{Bounders: 3},
				{Bounders: 4},
				{Bounders: 5},
				{Bounders: 3, Hunters: 2},
				{Bounders: 2, Hunters: 3},
				{Bounders: 3, Hunters: 3},
				{Bounders: 2, Hunters: 3, ShadowLords: 1},
				{Bounders: 3, Hunters: 3, ShadowLords: 1},
				{Bounders: 2, Hunters: 4, ShadowLords: 1},
				{Bounders: 3, Hunters: 4, ShadowLords: 2},
			},
		},
		Layout: JoustLayout{
			MinWidth:  40,
			MinHeight: 16,
			LavaRows:  1,
			BottomGap: 1,
			Ledges: []Ledge{
				{X: 0.094, Y: 0.236, W: 0.156},
				{X: 0.75, Y: 0.236, W: 0.156},
				{X: 0.1875, Y: 0.458, W: 0.625},
				{X: 0.094, Y: 0.68, W: 0.156},
				{X: 0.75, Y: 0.68, W: 0.156},
			},
			Bottom: []BottomLayout{
				{Wave: 1, Sections: []Section{{X: 0, W: 1}}},
				{Wave: 2, Sections: []Section{{X: 0, W: 0.45}, {X: 0.55, W: 0.45}}},
				{Wave: 3, Sections: []Section{{X: 0, W: 0.3}, {X: 0.35, W: 0.3}, {X: 0.7, W: 0.3}}},
				{Wave: 4, Sections: []Section{{X: 0, W: 0.2}, {X: 0.25, W: 0.2}, {X: 0.5, W: 0.2}, {X: 0.75, W: 0.25}}},
				{Wave: 5, Sections: []Section{{X: 0, W: 0.15}, {X: 0.25, W: 0.15}, {X: 0.5, W: 0.15}, {X: 0.75, W: 0.15}}},
				{Wave: 6, Sections: []Section{{X: 0.1, W: 0.1}, {X: 0.3, W: 0.1}, {X: 0.5, W: 0.1}, {X: 0.7, W: 0.1}, {X: 0.9, W: 0.1}}},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:      0.5,
				HatchReduction:       250,
				PterodactylReduction: 900,
			},
		},
	}
}
