package rules

import "time"

// FruitKind is one of the fixed fruit types.
type FruitKind string

const (
	FruitOrange     FruitKind = "orange"
	FruitGrape      FruitKind = "grape"
	FruitApple      FruitKind = "apple"
	FruitCherry     FruitKind = "cherry"
	FruitStrawberry FruitKind = "strawberry"
)

// FruitKinds lists every kind, common first.
var FruitKinds = []FruitKind{FruitOrange, FruitGrape, FruitApple, FruitCherry, FruitStrawberry}

// fruitWeights biases the time-mode pool toward common fruit.
var fruitWeights = map[FruitKind]int{
	FruitOrange:     4,
	FruitGrape:      4,
	FruitApple:      2,
	FruitCherry:     1,
	FruitStrawberry: 1,
}

// Points returns the time-mode score for eating this fruit. Endless and
// levels mode ignore this and award the flat FoodPoints.
func (k FruitKind) Points() int {
	switch k {
	case FruitGrape:
		return 20
	case FruitApple:
		return 30
	case FruitCherry:
		return 40
	case FruitStrawberry:
		return 50
	default:
		return 10
	}
}

// Lifespan returns how long the fruit stays on the board in time mode before
// it expires and is replaced.
func (k FruitKind) Lifespan() time.Duration {
	switch k {
	case FruitCherry:
		return 8 * time.Second
	case FruitStrawberry:
		return 7 * time.Second
	default:
		return 10 * time.Second
	}
}

// Valid reports whether k is a known fruit kind.
func (k FruitKind) Valid() bool {
	_, ok := fruitWeights[k]
	return ok
}

// Food is a regular fruit on the board. SpawnedAt is simulated time since
// run start; lifespans are only enforced in time mode.
type Food struct {
	Pos       Point         `json:"pos"`
	Kind      FruitKind     `json:"kind"`
	SpawnedAt time.Duration `json:"-"`
}

// GoldenFruit is the rare time-limited bonus collectible (non-time modes).
type GoldenFruit struct {
	Pos       Point         `json:"pos"`
	SpawnedAt time.Duration `json:"-"`
}

// Poison penalizes score on contact without ending the run (time mode).
type Poison struct {
	Pos       Point         `json:"pos"`
	SpawnedAt time.Duration `json:"-"`
}

// ClockPowerup extends the countdown on contact (time mode).
type ClockPowerup struct {
	Pos       Point         `json:"pos"`
	SpawnedAt time.Duration `json:"-"`
}

// MovingObstacle patrols between Min and Max, one cell per tick, reflecting
// at its bounds.
type MovingObstacle struct {
	Pos Point `json:"pos"`
	Vel Point `json:"vel"`
	Min Point `json:"min"`
	Max Point `json:"max"`
}
