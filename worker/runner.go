// Package worker drives sessions against the real clock. It is the only
// place real time enters the engine; the rules package below it is driven
// purely by elapsed durations.
package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/gridsnake/engine/audio"
	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

// DefaultFrameInterval is the render cadence. Simulation steps are decoupled
// from it; the session accumulates whatever time each frame delivers.
const DefaultFrameInterval = 16 * time.Millisecond

var runsCompleted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gridsnake",
		Subsystem: "worker",
		Name:      "runs_completed",
		Help:      "Completed runs by mode and final state.",
	},
	[]string{"mode", "state"},
)

func init() {
	prometheus.MustRegister(runsCompleted)
}

// FrameSink receives one snapshot per frame. Implementations must not block;
// a slow sink drops frames, it does not stall the loop.
type FrameSink interface {
	Frame(*rules.Snapshot)
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(*rules.Snapshot)

func (f FrameSinkFunc) Frame(s *rules.Snapshot) { f(s) }

// Result is the terminal outcome of one run.
type Result struct {
	State     rules.RunState
	Score     int
	HighScore int
	Improved  bool
}

type command struct {
	dir    rules.Direction
	hasDir bool
	pause  bool
}

// Runner owns one session and its goroutine. All session access happens on
// the Run goroutine; inputs arrive over a channel.
type Runner struct {
	session *rules.Session
	store   store.Store
	audio   audio.Player
	sinks   []FrameSink

	frameInterval time.Duration
	cmds          chan command
}

// NewRunner wires a runner for sess. st may be nil to skip persistence,
// player may be nil for silence.
func NewRunner(sess *rules.Session, st store.Store, player audio.Player, sinks ...FrameSink) *Runner {
	if player == nil {
		player = audio.NopPlayer{}
	}
	return &Runner{
		session:       sess,
		store:         st,
		audio:         player,
		sinks:         sinks,
		frameInterval: DefaultFrameInterval,
		cmds:          make(chan command, 16),
	}
}

// SetDirection queues one direction input. Drops the input if the loop is
// more than a channel buffer behind, which at frame cadence means the run
// is already over.
func (r *Runner) SetDirection(d rules.Direction) {
	select {
	case r.cmds <- command{dir: d, hasDir: true}:
	default:
	}
}

// TogglePause queues a pause or resume, whichever applies.
func (r *Runner) TogglePause() {
	select {
	case r.cmds <- command{pause: true}:
	default:
	}
}

// Run starts the session and drives it until the run ends or ctx is
// cancelled. It returns the terminal result, or ctx.Err on cancellation.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.session.Start()
	r.broadcast()

	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()

		case cmd := <-r.cmds:
			r.apply(cmd)

		case now := <-ticker.C:
			events := r.session.Advance(now.Sub(last))
			last = now
			for _, e := range events {
				r.audio.Play(e.Kind)
				if done, res := r.handle(ctx, e); done {
					r.broadcast()
					return res, nil
				}
			}
			r.broadcast()
		}
	}
}

func (r *Runner) apply(cmd command) {
	if cmd.hasDir {
		r.session.SetDirection(cmd.dir)
		return
	}
	if cmd.pause {
		switch r.session.State() {
		case rules.StateRunning:
			r.session.Pause()
		case rules.StatePaused:
			r.session.Resume()
		}
	}
}

// handle reacts to terminal events: persists progress and reports the run
// result. Store failures are logged, never fatal; losing a record beats
// losing the game loop.
func (r *Runner) handle(ctx context.Context, e rules.Event) (bool, Result) {
	switch e.Kind {
	case rules.EventRunEnded:
		res := Result{State: rules.StateGameOver, Score: e.Score}
		res.HighScore, res.Improved = r.persistScore(ctx, e.Score)
		if res.Improved {
			r.audio.Play(rules.EventHighScore)
		}
		runsCompleted.WithLabelValues(
			string(r.session.Config().Mode), string(rules.StateGameOver)).Inc()
		return true, res

	case rules.EventLevelComplete:
		res := Result{State: rules.StateLevelComplete, Score: e.Score}
		res.HighScore, res.Improved = r.persistScore(ctx, e.Score)
		if res.Improved {
			r.audio.Play(rules.EventHighScore)
		}
		r.persistUnlock(ctx, e.Level+1)
		runsCompleted.WithLabelValues(
			string(r.session.Config().Mode), string(rules.StateLevelComplete)).Inc()
		return true, res
	}
	return false, Result{}
}

func (r *Runner) persistScore(ctx context.Context, score int) (int, bool) {
	if r.store == nil {
		return score, false
	}
	mode := r.session.Config().Mode
	prev, err := r.store.HighScore(ctx, mode)
	if err != nil {
		log.WithError(err).Error("unable to read high score")
		return score, false
	}
	best, err := r.store.RecordScore(ctx, mode, score)
	if err != nil {
		log.WithError(err).Error("unable to record score")
		return score, false
	}
	return best, score > prev
}

func (r *Runner) persistUnlock(ctx context.Context, level int) {
	if r.store == nil {
		return
	}
	if _, err := r.store.UnlockLevel(ctx, level); err != nil {
		log.WithError(err).WithField("Level", level).Error("unable to unlock level")
	}
}

func (r *Runner) broadcast() {
	snap := r.session.Snapshot()
	for _, s := range r.sinks {
		s.Frame(snap)
	}
}
