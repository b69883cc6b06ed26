package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObstacleMovesEveryTick(t *testing.T) {
	obs := []MovingObstacle{{
		Pos: Point{X: 3, Y: 5},
		Vel: Point{X: 1, Y: 0},
		Min: Point{X: 1, Y: 5},
		Max: Point{X: 10, Y: 5},
	}}
	AdvanceObstacles(obs)
	assert.Equal(t, Point{X: 4, Y: 5}, obs[0].Pos)
	AdvanceObstacles(obs)
	assert.Equal(t, Point{X: 5, Y: 5}, obs[0].Pos)
}

func TestObstacleReflectsAtBounds(t *testing.T) {
	obs := []MovingObstacle{{
		Pos: Point{X: 9, Y: 5},
		Vel: Point{X: 1, Y: 0},
		Min: Point{X: 1, Y: 5},
		Max: Point{X: 10, Y: 5},
	}}

	AdvanceObstacles(obs)
	assert.Equal(t, Point{X: 10, Y: 5}, obs[0].Pos, "reaches the bound on this tick")
	assert.Equal(t, -1, obs[0].Vel.X, "velocity points back toward the interior")

	AdvanceObstacles(obs)
	assert.Equal(t, Point{X: 9, Y: 5}, obs[0].Pos, "moves inward on the next tick")
}

func TestObstacleStartingOnBoundSelfCorrects(t *testing.T) {
	obs := []MovingObstacle{{
		Pos: Point{X: 0, Y: 2},
		Vel: Point{X: -1, Y: 0},
		Min: Point{X: 0, Y: 2},
		Max: Point{X: 6, Y: 2},
	}}
	AdvanceObstacles(obs)
	assert.Equal(t, 1, obs[0].Vel.X, "velocity is set toward the interior, not merely negated")
}

func TestObstacleVerticalReflection(t *testing.T) {
	obs := []MovingObstacle{{
		Pos: Point{X: 4, Y: 7},
		Vel: Point{X: 0, Y: 1},
		Min: Point{X: 4, Y: 2},
		Max: Point{X: 4, Y: 8},
	}}
	AdvanceObstacles(obs)
	assert.Equal(t, Point{X: 4, Y: 8}, obs[0].Pos)
	assert.Equal(t, -1, obs[0].Vel.Y)
}
