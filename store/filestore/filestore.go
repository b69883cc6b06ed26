// Package filestore persists player data as a single JSON profile on disk.
// It is the default backend for local play.
package filestore

import (
	"context"
	"encoding/json"
	"os"
	"os/user"
	"path"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

const profileName = "profile.json"

func defaultDir() string {
	return path.Join(homeDir(), ".gridsnake")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// profile is the on-disk shape. Zero values decode to sane defaults.
type profile struct {
	HighScores map[rules.Mode]int `json:"highScores"`
	Unlocked   int                `json:"unlockedLevels"`
	Settings   store.Settings     `json:"settings"`
}

// NewFileStore returns a file based store implementation (one JSON profile).
// An absent or malformed file falls back to defaults rather than failing, so
// a corrupt profile costs the player their progress but never the game.
func NewFileStore(directory string) store.Store {
	if directory == "" {
		directory = defaultDir()
	}
	return &fileStore{directory: directory}
}

type fileStore struct {
	directory string
	loaded    bool
	data      profile
	lock      sync.Mutex
}

func (fs *fileStore) path() string {
	return path.Join(fs.directory, profileName)
}

// require loads the profile from disk once. Callers hold the lock.
func (fs *fileStore) require() *profile {
	if fs.loaded {
		return &fs.data
	}
	fs.loaded = true
	fs.data = profile{
		HighScores: map[rules.Mode]int{},
		Unlocked:   1,
		Settings:   store.DefaultSettings(),
	}

	raw, err := os.ReadFile(fs.path())
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("Path", fs.path()).
				Warn("unable to read profile, starting fresh")
		}
		return &fs.data
	}
	var p profile
	if err := json.Unmarshal(raw, &p); err != nil {
		log.WithError(err).WithField("Path", fs.path()).
			Warn("malformed profile, starting fresh")
		return &fs.data
	}
	if p.HighScores == nil {
		p.HighScores = map[rules.Mode]int{}
	}
	if p.Unlocked < 1 {
		p.Unlocked = 1
	}
	p.Settings = p.Settings.Normalize()
	fs.data = p
	return &fs.data
}

// flush writes the profile through a temp file so a crash mid-write leaves
// the previous profile intact.
func (fs *fileStore) flush() error {
	if err := os.MkdirAll(fs.directory, 0o755); err != nil {
		return errors.Wrap(err, "unable to create data directory")
	}
	raw, err := json.MarshalIndent(&fs.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to encode profile")
	}
	tmp := fs.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "unable to write profile")
	}
	return errors.Wrap(os.Rename(tmp, fs.path()), "unable to replace profile")
}

func (fs *fileStore) HighScore(ctx context.Context, mode rules.Mode) (int, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.require().HighScores[mode], nil
}

func (fs *fileStore) RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	p := fs.require()
	if score <= p.HighScores[mode] {
		return p.HighScores[mode], nil
	}
	p.HighScores[mode] = score
	return score, fs.flush()
}

func (fs *fileStore) UnlockedLevels(ctx context.Context) (int, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.require().Unlocked, nil
}

func (fs *fileStore) UnlockLevel(ctx context.Context, level int) (int, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	p := fs.require()
	if level <= p.Unlocked {
		return p.Unlocked, nil
	}
	p.Unlocked = level
	return level, fs.flush()
}

func (fs *fileStore) Settings(ctx context.Context) (store.Settings, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.require().Settings, nil
}

func (fs *fileStore) PutSettings(ctx context.Context, s store.Settings) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.require().Settings = s.Normalize()
	return fs.flush()
}
