package store

import (
	"context"
	"errors"
	"sync"

	"github.com/gridsnake/engine/rules"
)

// ErrNotFound is thrown when a requested record does not exist. Readers for
// player data never surface it; they fall back to defaults instead.
var ErrNotFound = errors.New("store: not found")

// Settings is the persisted player configuration applied to new runs.
type Settings struct {
	Difficulty rules.Difficulty `json:"difficulty"`
	FruitKind  rules.FruitKind  `json:"fruitKind,omitempty"`
	Mode       rules.Mode       `json:"mode"`
}

// DefaultSettings returns the settings used before the player saved any.
func DefaultSettings() Settings {
	return Settings{
		Difficulty: rules.DifficultyMedium,
		Mode:       rules.ModeEndless,
	}
}

// Normalize replaces invalid fields with defaults so a stale or hand-edited
// record can never produce an unplayable configuration. Every backend applies
// it on write.
func (s Settings) Normalize() Settings {
	if !s.Difficulty.Valid() {
		s.Difficulty = rules.DifficultyMedium
	}
	if !s.Mode.Valid() {
		s.Mode = rules.ModeEndless
	}
	if s.FruitKind != "" && !s.FruitKind.Valid() {
		s.FruitKind = ""
	}
	return s
}

// Store is the interface to the backend holding player data: one high score
// per mode, the unlocked level count, and settings.
//
// UnlockLevel and RecordScore are monotonic. A lower value than the stored
// one is a no-op, so a bad run can never regress progress.
type Store interface {
	HighScore(ctx context.Context, mode rules.Mode) (int, error)
	RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error)
	UnlockedLevels(ctx context.Context) (int, error)
	UnlockLevel(ctx context.Context, level int) (int, error)
	Settings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, s Settings) error
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		scores:   map[rules.Mode]int{},
		unlocked: 1,
		settings: DefaultSettings(),
	}
}

type inmem struct {
	scores   map[rules.Mode]int
	unlocked int
	settings Settings
	lock     sync.Mutex
}

func (in *inmem) HighScore(ctx context.Context, mode rules.Mode) (int, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	return in.scores[mode], nil
}

func (in *inmem) RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if score > in.scores[mode] {
		in.scores[mode] = score
	}
	return in.scores[mode], nil
}

func (in *inmem) UnlockedLevels(ctx context.Context) (int, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	return in.unlocked, nil
}

func (in *inmem) UnlockLevel(ctx context.Context, level int) (int, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if level > in.unlocked {
		in.unlocked = level
	}
	return in.unlocked, nil
}

func (in *inmem) Settings(ctx context.Context) (Settings, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	return in.settings, nil
}

func (in *inmem) PutSettings(ctx context.Context, s Settings) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.settings = s.Normalize()
	return nil
}
