package rules

// Level is the read-only layout for one levels-mode stage: static obstacles,
// patrolling obstacles, and the cumulative score target.
type Level struct {
	Number    int
	Obstacles []Point
	Moving    []MovingObstacle
}

// Target returns the cumulative score that completes the level.
func (l Level) Target() int { return l.Number * LevelTargetStep }

// LevelCount is the number of distinct layouts. Levels past the count wrap
// around but keep their growing score target.
const LevelCount = 8

// LevelLayout builds the layout for level n on a w by h grid. Layouts are
// generated rather than stored so they scale with the grid size.
func LevelLayout(n, w, h int) Level {
	if n < 1 {
		n = 1
	}
	l := Level{Number: n}
	cx, cy := w/2, h/2

	switch ((n - 1) % LevelCount) + 1 {
	case 1:
		// Open board.

	case 2:
		// Central pillar.
		for dy := -2; dy <= 2; dy++ {
			l.Obstacles = append(l.Obstacles, Point{X: cx, Y: cy + dy})
		}

	case 3:
		// Two pillars, one horizontal patrol between them.
		for dy := -2; dy <= 2; dy++ {
			l.Obstacles = append(l.Obstacles,
				Point{X: w / 4, Y: cy + dy},
				Point{X: w - 1 - w/4, Y: cy + dy})
		}
		l.Moving = append(l.Moving, MovingObstacle{
			Pos: Point{X: cx, Y: cy},
			Vel: Point{X: 1, Y: 0},
			Min: Point{X: w/4 + 1, Y: cy},
			Max: Point{X: w - 2 - w/4, Y: cy},
		})

	case 4:
		// Zigzag horizontal barriers.
		span := w * 2 / 5
		for i := 0; i < 3; i++ {
			y := h * (i + 1) / 4
			if i%2 == 0 {
				for x := 0; x < span; x++ {
					l.Obstacles = append(l.Obstacles, Point{X: x, Y: y})
				}
			} else {
				for x := w - span; x < w; x++ {
					l.Obstacles = append(l.Obstacles, Point{X: x, Y: y})
				}
			}
		}

	case 5:
		// Four rooms with a central opening in each divider.
		gap := h / 5
		for y := 0; y < h; y++ {
			if y < cy-gap/2 || y > cy+gap/2 {
				l.Obstacles = append(l.Obstacles, Point{X: cx, Y: y})
			}
		}
		for x := 0; x < w; x++ {
			if x < cx-gap/2 || x > cx+gap/2 {
				l.Obstacles = append(l.Obstacles, Point{X: x, Y: cy})
			}
		}

	case 6:
		// Blocked corners plus a vertical patrol through the middle.
		c := min(w, h) / 5
		for dy := 0; dy < c; dy++ {
			for dx := 0; dx < c; dx++ {
				l.Obstacles = append(l.Obstacles,
					Point{X: dx, Y: dy},
					Point{X: w - 1 - dx, Y: dy},
					Point{X: dx, Y: h - 1 - dy},
					Point{X: w - 1 - dx, Y: h - 1 - dy})
			}
		}
		l.Moving = append(l.Moving, MovingObstacle{
			Pos: Point{X: cx, Y: cy},
			Vel: Point{X: 0, Y: 1},
			Min: Point{X: cx, Y: c + 1},
			Max: Point{X: cx, Y: h - 2 - c},
		})

	case 7:
		// Cross pattern.
		arm := min(w, h) / 4
		for d := -arm; d <= arm; d++ {
			l.Obstacles = append(l.Obstacles,
				Point{X: cx + d, Y: cy},
				Point{X: cx, Y: cy + d})
		}

	case 8:
		// Two horizontal patrol lanes, no static cover.
		l.Moving = append(l.Moving,
			MovingObstacle{
				Pos: Point{X: 1, Y: h / 3},
				Vel: Point{X: 1, Y: 0},
				Min: Point{X: 1, Y: h / 3},
				Max: Point{X: w - 2, Y: h / 3},
			},
			MovingObstacle{
				Pos: Point{X: w - 2, Y: h * 2 / 3},
				Vel: Point{X: -1, Y: 0},
				Min: Point{X: 1, Y: h * 2 / 3},
				Max: Point{X: w - 2, Y: h * 2 / 3},
			})
	}

	return l
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
