package rules

// Snapshot is the read-only view handed to rendering and the watch api once
// per frame. All slices are copies; mutating a snapshot never touches the
// session.
type Snapshot struct {
	ID         string     `json:"id"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	State      RunState   `json:"state"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`

	Snake     []Point          `json:"snake"`
	Foods     []Food           `json:"foods"`
	Golden    *GoldenFruit     `json:"golden,omitempty"`
	Poisons   []Poison         `json:"poisons,omitempty"`
	Clock     *ClockPowerup    `json:"clock,omitempty"`
	Obstacles []Point          `json:"obstacles,omitempty"`
	Moving    []MovingObstacle `json:"moving,omitempty"`

	Score           int     `json:"score"`
	Level           int     `json:"level,omitempty"`
	TimeLeftSeconds float64 `json:"timeLeftSeconds,omitempty"`

	Paused          bool `json:"paused"`
	WaitingToStart  bool `json:"waitingToStart"`
	WaitingToResume bool `json:"waitingToResume"`
}

// Snapshot builds the current render snapshot.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:              s.ID,
		Mode:            s.cfg.Mode,
		Difficulty:      s.cfg.Difficulty,
		State:           s.state,
		Width:           s.cfg.Width,
		Height:          s.cfg.Height,
		Foods:           append([]Food(nil), s.foods...),
		Poisons:         append([]Poison(nil), s.poisons...),
		Obstacles:       append([]Point(nil), s.level.Obstacles...),
		Moving:          append([]MovingObstacle(nil), s.moving...),
		Score:           s.score,
		Paused:          s.state == StatePaused,
		WaitingToStart:  s.state == StateWaitingForFirstInput,
		WaitingToResume: s.state == StateWaitingToResume,
	}
	// Before Start there is no snake to copy yet.
	if s.snake != nil {
		snap.Snake = append([]Point(nil), s.snake.Body...)
	}
	if s.golden != nil {
		g := *s.golden
		snap.Golden = &g
	}
	if s.clock != nil {
		c := *s.clock
		snap.Clock = &c
	}
	if s.cfg.Mode == ModeLevels {
		snap.Level = s.cfg.Level
	}
	if s.rules.timed() {
		snap.TimeLeftSeconds = s.timeLeft.Seconds()
	}
	return snap
}
