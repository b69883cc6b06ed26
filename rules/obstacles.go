package rules

// AdvanceObstacles moves every moving obstacle one step and reflects at its
// configured bounds. The velocity on a bounded axis is set to point back
// toward the interior, which for one-cell-per-tick motion is the same as
// negating it but also self-corrects an obstacle that starts on a bound.
func AdvanceObstacles(obstacles []MovingObstacle) {
	for i := range obstacles {
		o := &obstacles[i]
		o.Pos.X += o.Vel.X
		o.Pos.Y += o.Vel.Y

		if o.Vel.X != 0 {
			if o.Pos.X <= o.Min.X {
				o.Vel.X = 1
			} else if o.Pos.X >= o.Max.X {
				o.Vel.X = -1
			}
		}
		if o.Vel.Y != 0 {
			if o.Pos.Y <= o.Min.Y {
				o.Vel.Y = 1
			} else if o.Pos.Y >= o.Max.Y {
				o.Vel.Y = -1
			}
		}
	}
}
