package commands

import (
	"context"
	"fmt"
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridsnake/engine/api"
	"github.com/gridsnake/engine/audio"
	"github.com/gridsnake/engine/config"
	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
	"github.com/gridsnake/engine/store/filestore"
	redisstore "github.com/gridsnake/engine/store/redis"
	"github.com/gridsnake/engine/store/sqlstore"
	"github.com/gridsnake/engine/worker"
)

var (
	playMode       string
	playDifficulty string
	playLevel      int
	playFruit      string
	listenAddr     string
	noAudio        bool
	redisURL       string
	postgresURL    string
)

func init() {
	playCmd.Flags().StringVarP(&playMode, "mode", "m", "", "game mode: endless, levels or time")
	playCmd.Flags().StringVarP(&playDifficulty, "difficulty", "d", "", "difficulty: easy, medium or hard")
	playCmd.Flags().IntVarP(&playLevel, "level", "l", 1, "starting level in levels mode")
	playCmd.Flags().StringVar(&playFruit, "fruit", "", "pin the fruit kind outside time mode")
	playCmd.Flags().StringVar(&listenAddr, "listen", "", "serve the watch api on this address (e.g. :3005)")
	playCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable sound")
	playCmd.Flags().StringVar(&redisURL, "redis", "", "persist progress in redis at this URL")
	playCmd.Flags().StringVar(&postgresURL, "postgres", "", "persist progress in postgres at this URL")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a game in the terminal",
	Run: func(*cobra.Command, []string) {
		if err := runPlay(); err != nil {
			log.WithError(err).Fatal("play failed")
		}
	},
}

// openStore picks the backend: redis or postgres when asked for, the local
// JSON profile otherwise.
func openStore() (store.Store, error) {
	switch {
	case redisURL != "":
		s, err := redisstore.NewStore(redisURL)
		if err != nil {
			return nil, err
		}
		return store.InstrumentStore(s), nil
	case postgresURL != "":
		s, err := sqlstore.NewSQLStore(postgresURL)
		if err != nil {
			return nil, err
		}
		return store.InstrumentStore(s), nil
	default:
		return store.InstrumentStore(filestore.NewFileStore(config.DataDir)), nil
	}
}

// resolveConfig folds saved settings under the explicit flags and writes the
// result back, so the player's last choice becomes the next default.
func resolveConfig(ctx context.Context, st store.Store) (rules.RunConfig, error) {
	settings, err := st.Settings(ctx)
	if err != nil {
		return rules.RunConfig{}, errors.Wrap(err, "unable to load settings")
	}

	if playMode != "" {
		settings.Mode = rules.Mode(playMode)
	}
	if playDifficulty != "" {
		settings.Difficulty = rules.Difficulty(playDifficulty)
	}
	if playFruit != "" {
		settings.FruitKind = rules.FruitKind(playFruit)
	}
	if !settings.Mode.Valid() {
		return rules.RunConfig{}, errors.Errorf("unknown mode %q", playMode)
	}
	if !settings.Difficulty.Valid() {
		return rules.RunConfig{}, errors.Errorf("unknown difficulty %q", playDifficulty)
	}
	if err := st.PutSettings(ctx, settings); err != nil {
		log.WithError(err).Warn("unable to save settings")
	}

	cfg := rules.RunConfig{
		Mode:                settings.Mode,
		Difficulty:          settings.Difficulty,
		FruitKind:           settings.FruitKind,
		DeterministicSpawns: config.DeterministicSpawns,
	}

	if cfg.Mode == rules.ModeLevels {
		unlocked, err := st.UnlockedLevels(ctx)
		if err != nil {
			return rules.RunConfig{}, errors.Wrap(err, "unable to read progress")
		}
		if playLevel > unlocked {
			return rules.RunConfig{}, errors.Errorf(
				"level %d is locked, highest unlocked is %d", playLevel, unlocked)
		}
		cfg.Level = playLevel
		cfg.StartScore = (playLevel - 1) * rules.LevelTargetStep
	}
	return cfg, nil
}

func openAudio() audio.Player {
	if noAudio {
		return audio.NopPlayer{}
	}
	player, err := audio.NewTonePlayer()
	if err != nil {
		log.WithError(err).Warn("audio unavailable, continuing silent")
		return audio.NopPlayer{}
	}
	return player
}

func runPlay() error {
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		return errors.Wrap(err, "unable to open store")
	}

	cfg, err := resolveConfig(ctx, st)
	if err != nil {
		return err
	}

	player := openAudio()
	defer func() {
		if cerr := player.Close(); cerr != nil {
			log.WithError(cerr).Debug("audio close failed")
		}
	}()

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to initialize terminal")
	}
	defer termbox.Close()

	sinks := []worker.FrameSink{worker.FrameSinkFunc(func(snap *rules.Snapshot) {
		if rerr := render(snap); rerr != nil {
			log.WithError(rerr).Error("render failed")
		}
	})}
	if listenAddr != "" {
		srv := api.New(listenAddr, st)
		go srv.WaitForExit()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil {
				log.WithError(serr).Debug("api shutdown failed")
			}
		}()
		sinks = append(sinks, srv)
	}

	events := setupEventQueue()

	for {
		res, err := playRun(ctx, cfg, st, player, sinks, events)
		if err != nil {
			if errors.Cause(err) == context.Canceled {
				return nil
			}
			return err
		}

		if res.State == rules.StateLevelComplete {
			// Carry the cumulative score straight into the next level.
			cfg.Level++
			cfg.StartScore = res.Score
			continue
		}

		again, err := gameOverPrompt(events)
		if err != nil || !again {
			return err
		}
		if cfg.Mode == rules.ModeLevels {
			cfg.StartScore = (cfg.Level - 1) * rules.LevelTargetStep
		}
	}
}

// playRun drives a single run, forwarding terminal input to the runner.
func playRun(
	ctx context.Context,
	cfg rules.RunConfig,
	st store.Store,
	player audio.Player,
	sinks []worker.FrameSink,
	events <-chan termbox.Event,
) (worker.Result, error) {
	sess := rules.NewSession(cfg)
	r := worker.NewRunner(sess, st, player, sinks...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case ev := <-events:
				if ev.Type != termbox.EventKey {
					continue
				}
				if d, ok := directionFor(ev); ok {
					r.SetDirection(d)
					continue
				}
				switch {
				case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
					cancel()
				case ev.Ch == 'p' || ev.Key == termbox.KeySpace:
					r.TogglePause()
				}
			}
		}
	}()

	return r.Run(runCtx)
}

func directionFor(ev termbox.Event) (rules.Direction, bool) {
	switch {
	case ev.Key == termbox.KeyArrowUp || ev.Ch == 'k':
		return rules.Up, true
	case ev.Key == termbox.KeyArrowDown || ev.Ch == 'j':
		return rules.Down, true
	case ev.Key == termbox.KeyArrowLeft || ev.Ch == 'h':
		return rules.Left, true
	case ev.Key == termbox.KeyArrowRight || ev.Ch == 'l':
		return rules.Right, true
	}
	return rules.Up, false
}

// gameOverPrompt waits on the death screen for retry or quit.
func gameOverPrompt(events <-chan termbox.Event) (bool, error) {
	for ev := range events {
		if ev.Type != termbox.EventKey {
			continue
		}
		switch {
		case ev.Ch == 'r':
			return true, nil
		case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
			return false, nil
		}
	}
	return false, fmt.Errorf("terminal event stream closed")
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
