package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndlessRulesNeverWin(t *testing.T) {
	r := newModeRules(RunConfig{Mode: ModeEndless})
	assert.Equal(t, FoodPoints, r.foodPoints(Food{Kind: FruitStrawberry}),
		"fruit kind is cosmetic outside time mode")
	assert.False(t, r.win(1 << 30))
	assert.False(t, r.timed())
}

func TestLevelsRulesCumulativeTarget(t *testing.T) {
	r := newModeRules(RunConfig{Mode: ModeLevels, Level: 3})
	assert.False(t, r.win(299))
	assert.True(t, r.win(300))
	assert.True(t, r.win(301))
	assert.False(t, r.timed())
}

func TestTimeRulesRarityPoints(t *testing.T) {
	r := newModeRules(RunConfig{Mode: ModeTime})
	assert.Equal(t, 10, r.foodPoints(Food{Kind: FruitOrange}))
	assert.Equal(t, 20, r.foodPoints(Food{Kind: FruitGrape}))
	assert.Equal(t, 30, r.foodPoints(Food{Kind: FruitApple}))
	assert.Equal(t, 40, r.foodPoints(Food{Kind: FruitCherry}))
	assert.Equal(t, 50, r.foodPoints(Food{Kind: FruitStrawberry}))
	assert.True(t, r.timed())
	assert.False(t, r.win(1<<30), "time mode ends by countdown, not score")
}

func TestTimeRulesScoreClamp(t *testing.T) {
	r := newModeRules(RunConfig{Mode: ModeTime})
	assert.Equal(t, 0, r.applyScore(30, -PoisonPenalty))
	assert.Equal(t, 40, r.applyScore(100, -PoisonPenalty))

	r = newModeRules(RunConfig{Mode: ModeTime, AllowNegativeScore: true})
	assert.Equal(t, -30, r.applyScore(30, -PoisonPenalty))
}
