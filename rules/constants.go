package rules

import "time"

// Gameplay constants. These values define behavioral parity with the original
// game and should not be tuned casually.
const (
	// DefaultWidth and DefaultHeight are the grid dimensions used when the
	// run config leaves them zero.
	DefaultWidth  = 20
	DefaultHeight = 20

	// StartLength is the snake length at run start.
	StartLength = 3

	// FoodPoints is the flat fruit score in endless and levels mode.
	FoodPoints = 10
	// GoldenPoints is the golden fruit bonus.
	GoldenPoints = 50
	// PoisonPenalty is subtracted from the score on a poison hit (time mode).
	PoisonPenalty = 60

	// LevelTargetStep is the per-level score target; level n is complete at
	// n * LevelTargetStep cumulative points.
	LevelTargetStep = 100

	// FoodPoolSize is the number of fruits kept on the board in time mode.
	FoodPoolSize = 5

	// GoldenMinDistance is the minimum manhattan distance between a golden
	// fruit spawn and any regular food.
	GoldenMinDistance = 3

	// SampleCap bounds rejection sampling for spawn placement. If no free
	// cell is found within the cap the spawn is skipped for this cycle.
	SampleCap = 100

	// GoldenChance, PoisonChance and ClockChance are the probability rolls
	// performed on each periodic spawn check.
	GoldenChance = 0.10
	PoisonChance = 0.25
	ClockChance  = 0.20

	// PoisonWaveMax is the largest number of poisons placed per spawn wave.
	PoisonWaveMax = 2
)

// Timer constants.
const (
	// GoldenCheckEvery is the interval between golden fruit spawn rolls.
	GoldenCheckEvery = 3 * time.Second
	// PoisonCheckEvery is the interval between poison wave rolls (time mode).
	PoisonCheckEvery = 5 * time.Second
	// ClockCheckEvery is the interval between clock power-up rolls (time mode).
	ClockCheckEvery = 10 * time.Second

	// GoldenLifespan is how long a golden fruit stays on the board.
	GoldenLifespan = 6 * time.Second
	// PoisonLifespan is how long a poison stays on the board.
	PoisonLifespan = 8 * time.Second
	// ClockLifespan is how long a clock power-up stays on the board.
	ClockLifespan = 6 * time.Second

	// TimeModeStart is the countdown start value in time mode.
	TimeModeStart = 60 * time.Second
	// ClockBonus is added to the countdown on a clock pickup.
	ClockBonus = 15 * time.Second

	// EndDelay is how long the final death frame stays visible before the
	// run-ended event is emitted.
	EndDelay = 1500 * time.Millisecond
)

// Difficulty selects the simulated step duration.
type Difficulty string

const (
	// DifficultyEasy moves the snake every 280ms.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium moves the snake every 220ms.
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard moves the snake every 170ms.
	DifficultyHard Difficulty = "hard"
)

// Step returns the simulated duration of one movement step.
func (d Difficulty) Step() time.Duration {
	switch d {
	case DifficultyEasy:
		return 280 * time.Millisecond
	case DifficultyHard:
		return 170 * time.Millisecond
	default:
		return 220 * time.Millisecond
	}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Mode selects which rule set is active for a run. It is chosen before the
// run starts and immutable for the run's duration.
type Mode string

const (
	// ModeEndless has no win condition, score only increases.
	ModeEndless Mode = "endless"
	// ModeLevels completes a level once the cumulative target is reached.
	ModeLevels Mode = "levels"
	// ModeTime is a 60 second countdown with a fruit pool, poison and clock
	// power-ups.
	ModeTime Mode = "time"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeEndless, ModeLevels, ModeTime:
		return true
	}
	return false
}
