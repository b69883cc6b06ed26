package rules

// OutcomeKind classifies what the snake's next head position runs into.
type OutcomeKind int

const (
	// NoEvent means an empty cell: the snake moves and the tail pops.
	NoEvent OutcomeKind = iota
	// Wall means the head left the grid.
	Wall
	// SelfCollision means the head hit the snake's own body.
	SelfCollision
	// ObstacleCollision means the head hit a static or moving obstacle.
	ObstacleCollision
	// ClockPickup means the head hit the clock power-up (time mode).
	ClockPickup
	// PoisonHit means the head hit a poison (time mode).
	PoisonHit
	// FoodEaten means the head hit a fruit.
	FoodEaten
	// GoldenEaten means the head hit the golden fruit (non-time modes).
	GoldenEaten
)

// Terminal reports whether the outcome ends the run.
func (k OutcomeKind) Terminal() bool {
	return k == Wall || k == SelfCollision || k == ObstacleCollision
}

func (k OutcomeKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case SelfCollision:
		return "self-collision"
	case ObstacleCollision:
		return "obstacle-collision"
	case ClockPickup:
		return "clock-pickup"
	case PoisonHit:
		return "poison-hit"
	case FoodEaten:
		return "food-eaten"
	case GoldenEaten:
		return "golden-eaten"
	default:
		return "none"
	}
}

// Outcome is the classified result of one proposed head move. Index
// identifies which food or poison was hit where that matters.
type Outcome struct {
	Kind  OutcomeKind
	Index int
}

// Board is the read view of everything the resolver checks against. All
// slices reflect post-obstacle-motion state for the current tick, so a moving
// obstacle collides with the snake on the same tick it moves into its path.
type Board struct {
	Width    int
	Height   int
	Snake    *Snake
	Static   []Point
	Moving   []MovingObstacle
	Foods    []Food
	Golden   *GoldenFruit
	Poisons  []Poison
	Clock    *ClockPowerup
	TimeMode bool
}

// Resolve classifies the proposed next head position. Checks run in fixed
// precedence order and the first match wins: wall, self, obstacle, then the
// mode's collectibles, then NoEvent.
func Resolve(next Point, b Board) Outcome {
	if next.X < 0 || next.X >= b.Width || next.Y < 0 || next.Y >= b.Height {
		return Outcome{Kind: Wall}
	}
	if b.Snake.Occupies(next) {
		return Outcome{Kind: SelfCollision}
	}
	for _, o := range b.Static {
		if o.Equal(next) {
			return Outcome{Kind: ObstacleCollision}
		}
	}
	for _, o := range b.Moving {
		if o.Pos.Equal(next) {
			return Outcome{Kind: ObstacleCollision}
		}
	}

	if b.TimeMode {
		if b.Clock != nil && b.Clock.Pos.Equal(next) {
			return Outcome{Kind: ClockPickup}
		}
		for i, p := range b.Poisons {
			if p.Pos.Equal(next) {
				return Outcome{Kind: PoisonHit, Index: i}
			}
		}
		for i, f := range b.Foods {
			if f.Pos.Equal(next) {
				return Outcome{Kind: FoodEaten, Index: i}
			}
		}
		return Outcome{Kind: NoEvent}
	}

	if b.Golden != nil && b.Golden.Pos.Equal(next) {
		return Outcome{Kind: GoldenEaten}
	}
	for i, f := range b.Foods {
		if f.Pos.Equal(next) {
			return Outcome{Kind: FoodEaten, Index: i}
		}
	}
	return Outcome{Kind: NoEvent}
}
