package rules

// Snake is the ordered body of the player snake, head first.
type Snake struct {
	Body []Point `json:"body"`
}

// NewSnake creates a snake of the given length heading in dir. The body
// trails away from the head opposite to the heading.
func NewSnake(head Point, length int, dir Direction) *Snake {
	if length < 1 {
		length = 1
	}
	back := dir.Opposite().Delta()
	body := make([]Point, length)
	for i := range body {
		body[i] = Point{X: head.X + back.X*i, Y: head.Y + back.Y*i}
	}
	return &Snake{Body: body}
}

// Head returns the current head position.
func (s *Snake) Head() Point { return s.Body[0] }

// Len returns the body length.
func (s *Snake) Len() int { return len(s.Body) }

// Advance prepends the new head. Unless grow is set the tail is dropped, so
// the net length stays constant on a plain move.
func (s *Snake) Advance(head Point, grow bool) {
	s.Body = append([]Point{head}, s.Body...)
	if !grow && len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Occupies returns true if any body segment sits on p.
func (s *Snake) Occupies(p Point) bool {
	for _, b := range s.Body {
		if b.Equal(p) {
			return true
		}
	}
	return false
}
