package rules

// Run-ending causes, reported on the game-over event.
const (
	// CauseWallCollision is reported when the snake runs off the board.
	CauseWallCollision = "wall-collision"
	// CauseSelfCollision is reported when the snake bites its own body.
	CauseSelfCollision = "self-collision"
	// CauseObstacleCollision is reported when the snake hits an obstacle.
	CauseObstacleCollision = "obstacle-collision"
	// CauseTimeout is reported when the time-mode countdown reaches zero.
	CauseTimeout = "timeout"
)

// EventKind identifies a simulation event emitted during Advance.
type EventKind int

const (
	// EventStarted fires when a run is initialized and waiting for input.
	EventStarted EventKind = iota
	// EventEat fires when a fruit is eaten.
	EventEat
	// EventGoldenEaten fires when the golden fruit is eaten.
	EventGoldenEaten
	// EventPoisonHit fires when a poison is touched.
	EventPoisonHit
	// EventClockBonus fires when the clock power-up is picked up.
	EventClockBonus
	// EventGameOver fires immediately on a terminal outcome. The final death
	// frame stays visible until EventRunEnded.
	EventGameOver
	// EventRunEnded fires EndDelay after EventGameOver. UI takes over here.
	EventRunEnded
	// EventLevelComplete fires once when the levels-mode target is reached.
	EventLevelComplete
	// EventPause and EventResume track the pause cycle.
	EventPause
	EventResume
	// EventHighScore is raised by the run loop, not the session, when a
	// finished run beats the stored record for its mode.
	EventHighScore
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventEat:
		return "eat"
	case EventGoldenEaten:
		return "golden-eaten"
	case EventPoisonHit:
		return "poison-hit"
	case EventClockBonus:
		return "clock-bonus"
	case EventGameOver:
		return "game-over"
	case EventRunEnded:
		return "run-ended"
	case EventLevelComplete:
		return "level-complete"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventHighScore:
		return "high-score"
	default:
		return "unknown"
	}
}

// Event is one simulation notification. Events are collected during a frame
// and returned from Advance, so the core never depends on a callback shape.
type Event struct {
	Kind   EventKind
	Score  int    // score after the event
	Points int    // delta applied, where applicable
	Cause  string // set on EventGameOver / EventRunEnded
	Level  int    // set on EventLevelComplete
}
