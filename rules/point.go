package rules

// Point is a cell on the grid. The origin is the top-left corner, X grows to
// the right and Y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equal returns true if both points reference the same cell.
func (p Point) Equal(o Point) bool { return p.X == o.X && p.Y == o.Y }

// Manhattan returns the manhattan distance between two points.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction is one of the four movement directions.
type Direction int

const (
	// Up decreases Y.
	Up Direction = iota
	// Down increases Y.
	Down
	// Left decreases X.
	Left
	// Right increases X.
	Right
)

// Delta returns the per-step offset for the direction.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the direction that would reverse d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}
