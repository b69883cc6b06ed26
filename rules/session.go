package rules

import (
	"time"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// RunState is the session state machine state.
type RunState string

const (
	// StateIdle is the state before Start is called.
	StateIdle RunState = "idle"
	// StateWaitingForFirstInput renders the initialized board but does not
	// advance the snake until the first accepted direction input.
	StateWaitingForFirstInput RunState = "waiting-for-input"
	// StateRunning advances the simulation.
	StateRunning RunState = "running"
	// StatePaused suspends the simulation until an explicit resume.
	StatePaused RunState = "paused"
	// StateWaitingToResume freezes like StateWaitingForFirstInput after a
	// pause/resume cycle. One fresh direction input restarts motion, so a
	// stale queued direction can never reverse the snake into itself.
	StateWaitingToResume RunState = "waiting-to-resume"
	// StateLevelComplete is the terminal state for a reached level target.
	StateLevelComplete RunState = "level-complete"
	// StateGameOver is the terminal state for collisions and timeouts.
	StateGameOver RunState = "game-over"
)

// RunConfig fixes the rules of a single run. Mode and difficulty are
// immutable once Start is called; a new run requires a new Start.
type RunConfig struct {
	Mode       Mode
	Difficulty Difficulty
	Width      int
	Height     int

	// Level selects the layout and target in levels mode, starting at 1.
	Level int
	// StartScore is the cumulative score carried into this level.
	StartScore int

	// FruitKind pins the fruit type spawned in endless and levels mode.
	// Leave empty for a random kind per spawn.
	FruitKind FruitKind

	// AllowNegativeScore disables the time-mode score floor at zero.
	AllowNegativeScore bool

	// DeterministicSpawns makes every spawn probability roll succeed.
	DeterministicSpawns bool

	// Seed seeds the spawn rng. Zero means derive from the wall clock.
	Seed int64
}

func (cfg *RunConfig) withDefaults() {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if !cfg.Mode.Valid() {
		cfg.Mode = ModeEndless
	}
	if !cfg.Difficulty.Valid() {
		cfg.Difficulty = DifficultyMedium
	}
	if cfg.Level < 1 {
		cfg.Level = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
}

// Session owns all entity collections of one run and is their only mutator.
// It is not safe for concurrent use; the caller drives it from a single
// goroutine (frame loop plus input delivery).
type Session struct {
	ID string

	cfg     RunConfig
	state   RunState
	step    time.Duration
	acc     time.Duration
	elapsed time.Duration

	dir     *DirectionTracker
	snake   *Snake
	level   Level
	moving  []MovingObstacle
	foods   []Food
	golden  *GoldenFruit
	poisons []Poison
	clock   *ClockPowerup

	score    int
	timeLeft time.Duration
	cause    string
	ended    bool

	rules   modeRules
	spawner *Spawner
	sched   *scheduler
	events  []Event
}

// NewSession creates an idle session for cfg. Call Start to initialize the
// board.
func NewSession(cfg RunConfig) *Session {
	cfg.withDefaults()
	return &Session{
		ID:      uuid.NewV4().String(),
		cfg:     cfg,
		state:   StateIdle,
		dir:     NewDirectionTracker(),
		spawner: NewSpawner(cfg.Seed, cfg.DeterministicSpawns),
		sched:   &scheduler{},
		rules:   newModeRules(cfg),
	}
}

// State returns the current run state.
func (s *Session) State() RunState { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Config returns the run config.
func (s *Session) Config() RunConfig { return s.cfg }

// Start initializes (or restarts) the run: board entities, spawn timers, and
// the waiting-for-input freeze. Any timers left over from a previous run are
// cancelled first so a stale callback can never touch the new run.
func (s *Session) Start() {
	s.sched.Reset()
	s.acc = 0
	s.elapsed = 0
	s.ended = false
	s.cause = ""
	s.score = s.cfg.StartScore
	s.step = s.cfg.Difficulty.Step()
	s.dir.Reset()

	if s.cfg.Mode == ModeLevels {
		s.level = LevelLayout(s.cfg.Level, s.cfg.Width, s.cfg.Height)
	} else {
		s.level = Level{Number: s.cfg.Level}
	}
	s.moving = append([]MovingObstacle(nil), s.level.Moving...)
	s.snake = s.placeSnake()
	s.foods = nil
	s.golden = nil
	s.poisons = nil
	s.clock = nil

	if s.rules.timed() {
		s.timeLeft = TimeModeStart
		s.sched.Repeat(timerCountdown, time.Second)
		s.sched.Repeat(timerPoisonCheck, PoisonCheckEvery)
		s.sched.Repeat(timerClockCheck, ClockCheckEvery)
	} else {
		s.timeLeft = 0
		s.sched.Repeat(timerGoldenCheck, GoldenCheckEvery)
	}
	s.refillFood()

	s.state = StateWaitingForFirstInput
	s.emit(Event{Kind: EventStarted, Score: s.score, Level: s.cfg.Level})
	log.WithFields(log.Fields{
		"SessionID":  s.ID,
		"Mode":       s.cfg.Mode,
		"Difficulty": s.cfg.Difficulty,
		"Level":      s.cfg.Level,
	}).Info("run started")
}

// SetDirection feeds one direction input. In the waiting states an accepted
// input starts (or resumes) motion.
func (s *Session) SetDirection(d Direction) {
	switch s.state {
	case StateWaitingForFirstInput, StateWaitingToResume:
		if s.dir.Set(d) {
			s.state = StateRunning
		}
	case StateRunning:
		s.dir.Set(d)
	}
}

// Pause suspends a running session.
func (s *Session) Pause() {
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.emit(Event{Kind: EventPause, Score: s.score})
}

// Resume leaves the paused state. Motion does not restart until a fresh
// direction input arrives.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.state = StateWaitingToResume
	s.emit(Event{Kind: EventResume, Score: s.score})
}

// Advance accumulates real elapsed time and performs zero or more fixed
// steps, returning the events emitted since the last call. The remainder
// below one step is carried forward, not discarded, so long runs do not
// drift. In the paused and waiting states nothing advances, including every
// scheduled timer.
func (s *Session) Advance(dt time.Duration) []Event {
	switch s.state {
	case StateRunning:
		s.elapsed += dt
		s.sweepExpired()
		for _, k := range s.sched.Advance(dt) {
			s.fire(k)
		}
		s.acc += dt
		for s.state == StateRunning && s.acc >= s.step {
			s.acc -= s.step
			s.tick()
		}
	case StateGameOver:
		// Only the delayed run-ended notification is pending here; the
		// simulation itself no longer advances.
		if !s.ended {
			for _, k := range s.sched.Advance(dt) {
				s.fire(k)
			}
		}
	}
	return s.drain()
}

// tick performs exactly one simulation step: commit the pending direction,
// move obstacles, resolve the proposed head position against the moved
// board, then mutate snake, score, and spawns.
func (s *Session) tick() {
	d := s.dir.Commit()
	AdvanceObstacles(s.moving)

	delta := d.Delta()
	head := s.snake.Head()
	next := Point{X: head.X + delta.X, Y: head.Y + delta.Y}

	out := Resolve(next, Board{
		Width:    s.cfg.Width,
		Height:   s.cfg.Height,
		Snake:    s.snake,
		Static:   s.level.Obstacles,
		Moving:   s.moving,
		Foods:    s.foods,
		Golden:   s.golden,
		Poisons:  s.poisons,
		Clock:    s.clock,
		TimeMode: s.rules.timed(),
	})

	switch out.Kind {
	case Wall:
		s.gameOver(CauseWallCollision)
	case SelfCollision:
		s.gameOver(CauseSelfCollision)
	case ObstacleCollision:
		s.gameOver(CauseObstacleCollision)

	case NoEvent:
		s.snake.Advance(next, false)

	case FoodEaten:
		f := s.foods[out.Index]
		s.snake.Advance(next, true)
		s.foods = append(s.foods[:out.Index], s.foods[out.Index+1:]...)
		pts := s.rules.foodPoints(f)
		s.score = s.rules.applyScore(s.score, pts)
		s.emit(Event{Kind: EventEat, Score: s.score, Points: pts})
		s.refillFood()
		s.checkWin()

	case GoldenEaten:
		s.snake.Advance(next, true)
		s.golden = nil
		s.score = s.rules.applyScore(s.score, GoldenPoints)
		s.emit(Event{Kind: EventGoldenEaten, Score: s.score, Points: GoldenPoints})
		s.checkWin()

	case PoisonHit:
		s.snake.Advance(next, true)
		s.poisons = append(s.poisons[:out.Index], s.poisons[out.Index+1:]...)
		s.score = s.rules.applyScore(s.score, -PoisonPenalty)
		s.emit(Event{Kind: EventPoisonHit, Score: s.score, Points: -PoisonPenalty})

	case ClockPickup:
		s.snake.Advance(next, true)
		s.clock = nil
		s.timeLeft += ClockBonus
		s.emit(Event{Kind: EventClockBonus, Score: s.score})
	}
}

func (s *Session) fire(k timerKind) {
	// Kinds fired in the same scheduler batch as a terminal transition are
	// no-ops: once the run ends, only the delayed run-ended notification may
	// still do anything.
	if k != timerRunEnded && s.state != StateRunning {
		return
	}
	switch k {
	case timerGoldenCheck:
		if s.golden == nil && s.spawner.Roll(GoldenChance) {
			if p, ok := s.spawner.PlaceGolden(s.cfg.Width, s.cfg.Height, s.occupied, s.foods); ok {
				s.golden = &GoldenFruit{Pos: p, SpawnedAt: s.elapsed}
			}
		}

	case timerPoisonCheck:
		if s.spawner.Roll(PoisonChance) {
			n := s.spawner.WaveSize()
			for i := 0; i < n; i++ {
				if p, ok := s.spawner.Place(s.cfg.Width, s.cfg.Height, s.occupied); ok {
					s.poisons = append(s.poisons, Poison{Pos: p, SpawnedAt: s.elapsed})
				}
			}
		}

	case timerClockCheck:
		if s.clock == nil && s.spawner.Roll(ClockChance) {
			if p, ok := s.spawner.Place(s.cfg.Width, s.cfg.Height, s.occupied); ok {
				s.clock = &ClockPowerup{Pos: p, SpawnedAt: s.elapsed}
			}
		}

	case timerCountdown:
		s.timeLeft -= time.Second
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.gameOver(CauseTimeout)
		}

	case timerRunEnded:
		s.ended = true
		s.emit(Event{Kind: EventRunEnded, Score: s.score, Cause: s.cause})
	}
}

func (s *Session) gameOver(cause string) {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	s.cause = cause
	// Cancel every outstanding timer, then arm only the delayed run-ended
	// notification so the death frame stays visible for EndDelay.
	s.sched.Reset()
	s.sched.Schedule(timerRunEnded, EndDelay)
	s.emit(Event{Kind: EventGameOver, Score: s.score, Cause: cause})
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Cause":     cause,
		"Score":     s.score,
	}).Info("game over")
}

func (s *Session) checkWin() {
	if s.state != StateRunning || !s.rules.win(s.score) {
		return
	}
	s.state = StateLevelComplete
	s.sched.Reset()
	s.emit(Event{Kind: EventLevelComplete, Score: s.score, Level: s.cfg.Level})
	log.WithFields(log.Fields{
		"SessionID": s.ID,
		"Level":     s.cfg.Level,
		"Score":     s.score,
	}).Info("level complete")
}

// refillFood tops the board back up: a single fruit in endless and levels
// mode, the full weighted pool in time mode. Placement failures on a crowded
// board skip the spawn for this cycle.
func (s *Session) refillFood() {
	target := 1
	if s.rules.timed() {
		target = FoodPoolSize
	}
	for len(s.foods) < target {
		p, ok := s.spawner.Place(s.cfg.Width, s.cfg.Height, s.occupied)
		if !ok {
			return
		}
		kind := s.cfg.FruitKind
		if s.rules.timed() || !kind.Valid() {
			kind = s.spawner.PickKind()
		}
		s.foods = append(s.foods, Food{Pos: p, Kind: kind, SpawnedAt: s.elapsed})
	}
}

// sweepExpired removes entities whose lifespan has elapsed and replenishes
// the time-mode pool in the same frame.
func (s *Session) sweepExpired() {
	if s.golden != nil && s.elapsed-s.golden.SpawnedAt >= GoldenLifespan {
		s.golden = nil
	}
	if s.clock != nil && s.elapsed-s.clock.SpawnedAt >= ClockLifespan {
		s.clock = nil
	}
	if len(s.poisons) > 0 {
		kept := s.poisons[:0]
		for _, p := range s.poisons {
			if s.elapsed-p.SpawnedAt < PoisonLifespan {
				kept = append(kept, p)
			}
		}
		s.poisons = kept
	}
	if s.rules.timed() {
		kept := s.foods[:0]
		for _, f := range s.foods {
			if s.elapsed-f.SpawnedAt < f.Kind.Lifespan() {
				kept = append(kept, f)
			}
		}
		if len(kept) < len(s.foods) {
			s.foods = kept
			s.refillFood()
		}
	}
}

// occupied reports whether any entity currently claims p. This is the
// occupancy source for every spawn placement.
func (s *Session) occupied(p Point) bool {
	if s.snake != nil && s.snake.Occupies(p) {
		return true
	}
	for _, o := range s.level.Obstacles {
		if o.Equal(p) {
			return true
		}
	}
	for _, o := range s.moving {
		if o.Pos.Equal(p) {
			return true
		}
	}
	for _, f := range s.foods {
		if f.Pos.Equal(p) {
			return true
		}
	}
	if s.golden != nil && s.golden.Pos.Equal(p) {
		return true
	}
	for _, po := range s.poisons {
		if po.Pos.Equal(p) {
			return true
		}
	}
	if s.clock != nil && s.clock.Pos.Equal(p) {
		return true
	}
	return false
}

// placeSnake finds a clear horizontal run of StartLength cells, preferring
// the left middle of the board.
func (s *Session) placeSnake() *Snake {
	w, h := s.cfg.Width, s.cfg.Height
	clearAt := func(head Point) bool {
		for i := 0; i < StartLength; i++ {
			p := Point{X: head.X - i, Y: head.Y}
			if p.X < 0 {
				return false
			}
			for _, o := range s.level.Obstacles {
				if o.Equal(p) {
					return false
				}
			}
			for _, o := range s.moving {
				if o.Pos.Equal(p) {
					return false
				}
			}
		}
		return true
	}

	for dy := 0; dy < h; dy++ {
		y := (h/2 + dy) % h
		for x := StartLength - 1; x < w-1; x++ {
			head := Point{X: x, Y: y}
			if clearAt(head) {
				return NewSnake(head, StartLength, Right)
			}
		}
	}
	// A layout that blocks every row would be a broken level; fall back to
	// the raw center.
	return NewSnake(Point{X: w / 2, Y: h / 2}, StartLength, Right)
}

func (s *Session) emit(e Event) { s.events = append(s.events, e) }

func (s *Session) drain() []Event {
	ev := s.events
	s.events = nil
	return ev
}
