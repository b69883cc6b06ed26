package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(cfg RunConfig) *Session {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	s := NewSession(cfg)
	s.Start()
	s.drain()
	return s
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestEatingGrowsAndRespawnsFood(t *testing.T) {
	// Scenario: 20x20 grid, snake at (10,10)..(8,10), food directly ahead.
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = []Food{{Pos: Point{X: 11, Y: 10}, Kind: FruitOrange}}
	s.SetDirection(Right)

	events := s.Advance(s.step)

	assert.Equal(t, Point{X: 11, Y: 10}, s.snake.Head())
	assert.Equal(t, 4, s.snake.Len(), "tail is retained on a scoring event")
	assert.Equal(t, 10, s.score)
	assert.Contains(t, eventKinds(events), EventEat)

	require.Len(t, s.foods, 1, "a replacement food is placed in the same tick")
	assert.NotEqual(t, Point{X: 11, Y: 10}, s.foods[0].Pos)
	assert.False(t, s.snake.Occupies(s.foods[0].Pos))
}

func TestPlainMoveKeepsLength(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = []Food{{Pos: Point{X: 0, Y: 0}, Kind: FruitOrange}}
	s.SetDirection(Right)

	s.Advance(s.step)

	assert.Equal(t, Point{X: 11, Y: 10}, s.snake.Head())
	assert.Equal(t, 3, s.snake.Len(), "head added, tail removed, net length constant")
}

func TestAccumulatorCarriesRemainder(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless, Difficulty: DifficultyMedium})
	s.foods = []Food{{Pos: Point{X: 0, Y: 0}, Kind: FruitOrange}}
	s.SetDirection(Right)
	head := s.snake.Head()

	s.Advance(110 * time.Millisecond)
	assert.Equal(t, head, s.snake.Head(), "below one step, no movement")

	s.Advance(110 * time.Millisecond)
	assert.NotEqual(t, head, s.snake.Head(), "remainder carried forward completes the step")
}

func TestWallCollisionEndsRunAfterDelay(t *testing.T) {
	// Scenario: head moves off the grid; game over fires immediately, the
	// run-ended notification only after the 1500ms delay.
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.snake = &Snake{Body: []Point{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}}
	s.foods = []Food{{Pos: Point{X: 0, Y: 19}, Kind: FruitOrange}}
	s.score = 30
	s.SetDirection(Up)

	events := s.Advance(s.step)
	require.Contains(t, eventKinds(events), EventGameOver)
	assert.Equal(t, StateGameOver, s.State())
	for _, e := range events {
		if e.Kind == EventGameOver {
			assert.Equal(t, CauseWallCollision, e.Cause)
			assert.Equal(t, 30, e.Score)
		}
	}

	assert.Empty(t, s.Advance(time.Second), "death frame stays visible during the delay")

	events = s.Advance(600 * time.Millisecond)
	require.Len(t, events, 1)
	assert.Equal(t, EventRunEnded, events[0].Kind)
	assert.Equal(t, 30, events[0].Score, "run ends with the pre-collision score")

	assert.Empty(t, s.Advance(time.Minute), "run-ended fires exactly once")
}

func TestSelfCollisionIsTerminal(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	// Head moving right into its own body.
	s.snake = &Snake{Body: []Point{
		{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4},
	}}
	s.foods = []Food{{Pos: Point{X: 0, Y: 0}, Kind: FruitOrange}}
	s.SetDirection(Right)

	events := s.Advance(s.step)
	require.Contains(t, eventKinds(events), EventGameOver)
	for _, e := range events {
		if e.Kind == EventGameOver {
			assert.Equal(t, CauseSelfCollision, e.Cause)
		}
	}
}

func TestPoisonHitPenalizesWithoutEndingRun(t *testing.T) {
	// Scenario (time mode): poison at the head's next position.
	s := startedSession(RunConfig{Mode: ModeTime})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = []Food{
		{Pos: Point{X: 1, Y: 1}, Kind: FruitOrange},
		{Pos: Point{X: 2, Y: 1}, Kind: FruitGrape},
		{Pos: Point{X: 3, Y: 1}, Kind: FruitApple},
		{Pos: Point{X: 4, Y: 1}, Kind: FruitCherry},
		{Pos: Point{X: 5, Y: 1}, Kind: FruitStrawberry},
	}
	s.poisons = []Poison{{Pos: Point{X: 11, Y: 10}}}
	s.score = 100
	s.SetDirection(Right)

	events := s.Advance(s.step)

	assert.Equal(t, 40, s.score, "poison subtracts 60")
	assert.Empty(t, s.poisons, "poison removed on contact")
	assert.Equal(t, StateRunning, s.State(), "poison is not terminal")
	assert.Len(t, s.foods, 5, "food pool unaffected")
	assert.Contains(t, eventKinds(events), EventPoisonHit)
}

func TestTimeModeScoreFloor(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeTime})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = nil
	s.poisons = []Poison{{Pos: Point{X: 11, Y: 10}}}
	s.SetDirection(Right)
	s.Advance(s.step)
	assert.Equal(t, 0, s.score, "score is floored at zero by default")

	s = startedSession(RunConfig{Mode: ModeTime, AllowNegativeScore: true})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = nil
	s.poisons = []Poison{{Pos: Point{X: 11, Y: 10}}}
	s.SetDirection(Right)
	s.Advance(s.step)
	assert.Equal(t, -60, s.score, "negative scores allowed when configured")
}

func TestTimeModeFruitPoints(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeTime})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = []Food{{Pos: Point{X: 11, Y: 10}, Kind: FruitStrawberry}}
	s.SetDirection(Right)

	s.Advance(s.step)
	assert.Equal(t, 50, s.score, "time mode awards rarity-dependent points")
	assert.Len(t, s.foods, FoodPoolSize, "pool refilled to its target size")
}

func TestClockPickupExtendsCountdown(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeTime})
	s.snake = &Snake{Body: []Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}}
	s.foods = nil
	s.clock = &ClockPowerup{Pos: Point{X: 11, Y: 10}}
	before := s.timeLeft
	s.SetDirection(Right)

	events := s.Advance(s.step)

	assert.Nil(t, s.clock, "clock disappears on contact")
	assert.Equal(t, before+ClockBonus, s.timeLeft)
	assert.Contains(t, eventKinds(events), EventClockBonus)
}

func TestCountdownTimeout(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeTime})
	s.timeLeft = 2 * time.Second
	s.SetDirection(Right)

	s.Advance(time.Second)
	assert.Equal(t, StateRunning, s.State())

	events := s.Advance(time.Second)
	require.Contains(t, eventKinds(events), EventGameOver)
	assert.Equal(t, StateGameOver, s.State())
	for _, e := range events {
		if e.Kind == EventGameOver {
			assert.Equal(t, CauseTimeout, e.Cause, "timeout, not a collision")
		}
	}

	events = s.Advance(EndDelay)
	require.Len(t, events, 1)
	assert.Equal(t, EventRunEnded, events[0].Kind)
}

func TestTimeoutCatchUpBatchFiresSingleGameOver(t *testing.T) {
	// Scenario: one late frame delivers several countdown intervals plus a
	// due poison check in a single scheduler batch. Only the first countdown
	// may end the run; everything after it in the batch is a no-op.
	s := startedSession(RunConfig{Mode: ModeTime, DeterministicSpawns: true})
	s.timeLeft = time.Second
	s.SetDirection(Right)

	events := s.Advance(5 * time.Second)

	var gameOvers int
	for _, e := range events {
		if e.Kind == EventGameOver {
			gameOvers++
		}
	}
	assert.Equal(t, 1, gameOvers, "one terminal event per run, however late the frame")
	assert.Equal(t, StateGameOver, s.State())
	assert.Empty(t, s.poisons, "a check due in the same batch must not touch the ended run")

	events = s.Advance(EndDelay)
	require.Len(t, events, 1)
	assert.Equal(t, EventRunEnded, events[0].Kind)
}

func TestPauseResumeRequiresFreshInput(t *testing.T) {
	// Scenario: pause while running, resume, then require one direction
	// input before the snake moves again.
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.foods = []Food{{Pos: Point{X: 0, Y: 0}, Kind: FruitOrange}}
	s.SetDirection(Right)
	s.Advance(s.step)
	head := s.snake.Head()

	s.Pause()
	assert.Equal(t, StatePaused, s.State())
	s.Advance(10 * s.step)
	assert.Equal(t, head, s.snake.Head(), "paused simulation does not advance")

	s.Resume()
	assert.Equal(t, StateWaitingToResume, s.State())
	s.Advance(10 * s.step)
	assert.Equal(t, head, s.snake.Head(), "frozen until a fresh input")

	s.SetDirection(Up)
	assert.Equal(t, StateRunning, s.State())
	s.Advance(s.step)
	assert.NotEqual(t, head, s.snake.Head())
}

func TestPauseEventsEmitted(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.SetDirection(Right)
	s.Pause()
	s.Resume()
	kinds := eventKinds(s.Advance(0))
	assert.Contains(t, kinds, EventPause)
	assert.Contains(t, kinds, EventResume)
}

func TestLevelCompleteFiresExactlyOnce(t *testing.T) {
	// Scenario: level 2, cumulative target 200, score 190, fruit worth 10.
	s := startedSession(RunConfig{Mode: ModeLevels, Level: 2, StartScore: 190})
	s.snake = &Snake{Body: []Point{{X: 6, Y: 10}, {X: 5, Y: 10}, {X: 4, Y: 10}}}
	s.foods = []Food{{Pos: Point{X: 7, Y: 10}, Kind: FruitOrange}}
	s.SetDirection(Right)

	events := s.Advance(s.step)

	require.Contains(t, eventKinds(events), EventLevelComplete)
	assert.Equal(t, 200, s.score)
	assert.Equal(t, StateLevelComplete, s.State())
	for _, e := range events {
		if e.Kind == EventLevelComplete {
			assert.Equal(t, 2, e.Level)
		}
	}

	assert.Empty(t, s.Advance(time.Minute), "level complete does not re-trigger")
}

func TestGoldenCompletesLevelToo(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeLevels, Level: 1, StartScore: 60})
	s.snake = &Snake{Body: []Point{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}}
	s.foods = []Food{{Pos: Point{X: 18, Y: 18}, Kind: FruitOrange}}
	s.golden = &GoldenFruit{Pos: Point{X: 4, Y: 3}, SpawnedAt: s.elapsed}
	s.SetDirection(Right)

	events := s.Advance(s.step)
	assert.Equal(t, 110, s.score)
	assert.Contains(t, eventKinds(events), EventGoldenEaten)
	assert.Contains(t, eventKinds(events), EventLevelComplete)
}

func TestWaitingForFirstInputFreezesEverything(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless, DeterministicSpawns: true})
	head := s.snake.Head()

	events := s.Advance(time.Minute)
	assert.Empty(t, events)
	assert.Equal(t, head, s.snake.Head())
	assert.Nil(t, s.golden, "spawn timers are no-ops before the first input")
	assert.Equal(t, StateWaitingForFirstInput, s.State())
}

func TestGoldenFruitSpawnsOnDeterministicCheck(t *testing.T) {
	s := startedSession(RunConfig{
		Mode:                ModeEndless,
		Width:               40,
		Height:              40,
		DeterministicSpawns: true,
	})
	s.SetDirection(Right)

	events := s.Advance(GoldenCheckEvery)
	if s.golden == nil {
		// The snake may have run straight over the fresh spawn.
		assert.Contains(t, eventKinds(events), EventGoldenEaten)
	}
}

func TestGoldenFruitExpires(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.golden = &GoldenFruit{Pos: Point{X: 15, Y: 15}, SpawnedAt: 0}
	s.elapsed = GoldenLifespan
	s.sweepExpired()
	assert.Nil(t, s.golden, "golden fruit vanishes unconsumed after its lifespan")
}

func TestExpiredPoolFoodIsReplenishedSameTick(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeTime})
	require.Len(t, s.foods, FoodPoolSize)

	s.foods[0].Kind = FruitStrawberry
	s.foods[0].SpawnedAt = 0
	s.elapsed = FruitStrawberry.Lifespan()
	expired := s.foods[0].Pos

	s.sweepExpired()
	assert.Len(t, s.foods, FoodPoolSize, "deficit replaced in the same sweep")
	for _, f := range s.foods {
		assert.False(t, f.Pos.Equal(expired) && f.SpawnedAt == 0, "expired entry removed")
	}
}

func TestPoisonWaveSpawnsOnDeterministicCheck(t *testing.T) {
	s := startedSession(RunConfig{
		Mode:                ModeTime,
		Width:               40,
		Height:              40,
		DeterministicSpawns: true,
	})
	s.SetDirection(Right)

	events := s.Advance(PoisonCheckEvery)
	if len(s.poisons) == 0 {
		// The snake may have run straight over a one-poison wave.
		assert.Contains(t, eventKinds(events), EventPoisonHit)
	}
	for _, p := range s.poisons {
		assert.False(t, s.snake.Occupies(p.Pos))
	}
}

func TestSpawnsNeverOverlapEntities(t *testing.T) {
	s := startedSession(RunConfig{
		Mode:                ModeTime,
		Width:               40,
		Height:              40,
		DeterministicSpawns: true,
		Seed:                7,
	})
	s.SetDirection(Right)

	for i := 0; i < 20; i++ {
		s.Advance(250 * time.Millisecond)
		if s.State() != StateRunning {
			break
		}
		seen := map[Point]int{}
		for _, f := range s.foods {
			seen[f.Pos]++
		}
		for _, p := range s.poisons {
			seen[p.Pos]++
		}
		if s.clock != nil {
			seen[s.clock.Pos]++
		}
		for pos, n := range seen {
			assert.Equal(t, 1, n, "cell %v claimed by %d collectibles", pos, n)
		}
	}
}

func TestRestartCancelsOutstandingTimers(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	s.snake = &Snake{Body: []Point{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}}
	s.foods = []Food{{Pos: Point{X: 0, Y: 19}, Kind: FruitOrange}}
	s.SetDirection(Up)
	s.Advance(s.step) // wall collision, run-ended timer armed

	s.Start() // restart before the delayed notification fires
	events := s.Advance(time.Minute)
	assert.NotContains(t, eventKinds(events), EventRunEnded,
		"a stale timer from the previous run must never fire into the new run")
}

func TestSnakePlacedClearOfObstacles(t *testing.T) {
	for lvl := 1; lvl <= LevelCount; lvl++ {
		s := startedSession(RunConfig{Mode: ModeLevels, Level: lvl})
		for _, b := range s.snake.Body {
			for _, o := range s.level.Obstacles {
				assert.False(t, o.Equal(b), "level %d: snake spawned inside an obstacle", lvl)
			}
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := startedSession(RunConfig{Mode: ModeEndless})
	snap := s.Snapshot()
	require.NotEmpty(t, snap.Snake)

	snap.Snake[0] = Point{X: -99, Y: -99}
	assert.NotEqual(t, Point{X: -99, Y: -99}, s.snake.Head(),
		"mutating the snapshot must not touch the session")
	assert.True(t, snap.WaitingToStart)
	assert.Equal(t, s.ID, snap.ID)
}

func TestSnapshotBeforeStart(t *testing.T) {
	s := NewSession(RunConfig{Mode: ModeEndless, Seed: 1})

	snap := s.Snapshot()

	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Snake, "no snake exists before Start")
	assert.Empty(t, snap.Foods)
	assert.Zero(t, snap.Score)
}
