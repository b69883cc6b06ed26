package rules

// modeRules is the per-mode strategy: scoring deltas, the win condition, and
// whether the run is governed by the countdown timer.
type modeRules interface {
	// foodPoints returns the score delta for eating f.
	foodPoints(f Food) int
	// applyScore folds a delta into the score, including any floor handling.
	applyScore(score, delta int) int
	// win reports whether score satisfies the mode's win condition.
	win(score int) bool
	// timed reports whether the countdown timer is active.
	timed() bool
}

func newModeRules(cfg RunConfig) modeRules {
	switch cfg.Mode {
	case ModeLevels:
		return &levelsRules{target: cfg.Level * LevelTargetStep}
	case ModeTime:
		return &timeRules{allowNegative: cfg.AllowNegativeScore}
	default:
		return endlessRules{}
	}
}

// endlessRules: flat fruit value, no win condition.
type endlessRules struct{}

func (endlessRules) foodPoints(Food) int             { return FoodPoints }
func (endlessRules) applyScore(score, delta int) int { return score + delta }
func (endlessRules) win(int) bool                    { return false }
func (endlessRules) timed() bool                     { return false }

// levelsRules: flat fruit value, level complete at the cumulative target.
type levelsRules struct {
	target int
}

func (levelsRules) foodPoints(Food) int             { return FoodPoints }
func (levelsRules) applyScore(score, delta int) int { return score + delta }
func (r *levelsRules) win(score int) bool           { return score >= r.target }
func (levelsRules) timed() bool                     { return false }

// timeRules: rarity-dependent fruit value, poison penalties, countdown. The
// score is floored at zero unless negative scores are explicitly allowed.
type timeRules struct {
	allowNegative bool
}

func (timeRules) foodPoints(f Food) int { return f.Kind.Points() }

func (r *timeRules) applyScore(score, delta int) int {
	score += delta
	if score < 0 && !r.allowNegative {
		score = 0
	}
	return score
}

func (timeRules) win(int) bool { return false }
func (timeRules) timed() bool  { return true }
