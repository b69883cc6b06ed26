package rules

import "math/rand"

// Spawner places collectibles on unoccupied cells. Placement uses bounded
// rejection sampling: pick a random cell, retry while occupied, give up after
// SampleCap attempts. A full board therefore degrades to a skipped spawn
// instead of an endless loop.
type Spawner struct {
	rng *rand.Rand

	// deterministic forces every probability roll to succeed. Used by the
	// debug override and by tests that need spawn timers without randomness.
	deterministic bool
}

// NewSpawner returns a spawner seeded with seed.
func NewSpawner(seed int64, deterministic bool) *Spawner {
	return &Spawner{
		rng:           rand.New(rand.NewSource(seed)),
		deterministic: deterministic,
	}
}

// Roll performs a probability check with chance in [0,1]. Always true when
// the deterministic override is active.
func (sp *Spawner) Roll(chance float64) bool {
	if sp.deterministic {
		return true
	}
	return sp.rng.Float64() < chance
}

// Place samples an unoccupied cell on a w by h grid. The second return is
// false if no free cell was found within the attempt cap.
func (sp *Spawner) Place(w, h int, occupied func(Point) bool) (Point, bool) {
	for i := 0; i < SampleCap; i++ {
		p := Point{X: sp.rng.Intn(w), Y: sp.rng.Intn(h)}
		if !occupied(p) {
			return p, true
		}
	}
	return Point{}, false
}

// PlaceGolden samples an unoccupied cell that is at least GoldenMinDistance
// away from every regular food, so the bonus never spawns trivially adjacent
// to the fruit the player is already heading for.
func (sp *Spawner) PlaceGolden(w, h int, occupied func(Point) bool, foods []Food) (Point, bool) {
	return sp.Place(w, h, func(p Point) bool {
		if occupied(p) {
			return true
		}
		for _, f := range foods {
			if p.Manhattan(f.Pos) < GoldenMinDistance {
				return true
			}
		}
		return false
	})
}

// PickKind draws a fruit kind from the weighted distribution.
func (sp *Spawner) PickKind() FruitKind {
	total := 0
	for _, k := range FruitKinds {
		total += fruitWeights[k]
	}
	n := sp.rng.Intn(total)
	for _, k := range FruitKinds {
		n -= fruitWeights[k]
		if n < 0 {
			return k
		}
	}
	return FruitOrange
}

// WaveSize returns how many poisons the next wave should place, in
// [1, PoisonWaveMax].
func (sp *Spawner) WaveSize() int {
	return 1 + sp.rng.Intn(PoisonWaveMax)
}
