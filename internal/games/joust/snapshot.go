package joust

import "math"

// Snapshot contains the complete game state for replay and determinism checks.
// Positions are quantized to thousandths of a cell.
type Snapshot struct {
	Tick     int
	Wave     int
	Phase    int
	GameOver bool
	Winner   int

	// Each rider is 7 ints: X, Y, VX, VY, Score, Lives, Alive
	RiderData []int

	// Each enemy is 6 ints: Kind, X, Y, VX, VY, State
	EnemyData []int

	// Each egg is 4 ints: Kind, X, Y, HatchTimer
	EggData []int

	// Pterodactyl is 4 ints: X, Y, VX, VY (empty when none)
	PteroData []int
}

func quantize(v float64) int {
	return int(math.Round(v * 1000))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Wave:     g.wave.Number,
		Phase:    int(g.wave.Phase),
		GameOver: g.gameOver,
		Winner:   int(g.winner),
	}

	for _, r := range g.riders {
		snap.RiderData = append(snap.RiderData,
			quantize(r.X), quantize(r.Y), quantize(r.VX), quantize(r.VY),
			r.Score, r.Lives, boolInt(r.Alive))
	}
	for _, e := range g.enemies {
		if !e.Active {
			continue
		}
		snap.EnemyData = append(snap.EnemyData,
			int(e.Kind), quantize(e.X), quantize(e.Y), quantize(e.VX), quantize(e.VY), int(e.State))
	}
	for _, egg := range g.eggs {
		if !egg.Active {
			continue
		}
		snap.EggData = append(snap.EggData, int(egg.Kind), quantize(egg.X), quantize(egg.Y), egg.HatchTimer)
	}
	if g.ptero != nil {
		snap.PteroData = []int{quantize(g.ptero.X), quantize(g.ptero.Y), quantize(g.ptero.VX), quantize(g.ptero.VY)}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)             //#nosec G115 -- hash computation
	h = h*31 + uint64(boolInt(snap.GameOver)) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Winner)            //#nosec G115 -- hash computation

	for _, data := range [][]int{snap.RiderData, snap.EnemyData, snap.EggData, snap.PteroData} {
		h = h*31 + uint64(len(data)) //#nosec G115 -- hash computation
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}
	return h
}
