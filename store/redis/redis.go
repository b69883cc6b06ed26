// Package redis backs the player store with a redis instance, for cabinets
// that share progress across machines.
package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

const (
	scoreKeyPrefix = "gridsnake:score:"
	unlockedKey    = "gridsnake:unlocked"
	settingsKey    = "gridsnake:settings"
)

// maxScript stores max(current, ARGV[1]) and returns the stored value. Doing
// the comparison server side keeps RecordScore atomic across clients.
var maxScript = redis.NewScript(`
local cur = tonumber(redis.call("GET", KEYS[1]) or "0")
local val = tonumber(ARGV[1])
if val > cur then
	redis.call("SET", KEYS[1], val)
	return val
end
return cur
`)

// Store is a redis backed player store.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across "threads".
// - connectURL see: github.com/go-redis/redis/options.go for URL specifics
// The underlying redis client is immediately tested for connectivity, so
// don't call this until you know redis can connect.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)
	if err := client.Ping().Err(); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the underlying client.
func (rs *Store) Close() error { return rs.client.Close() }

func (rs *Store) HighScore(ctx context.Context, mode rules.Mode) (int, error) {
	score, err := rs.client.Get(scoreKeyPrefix + string(mode)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return score, errors.Wrap(err, "unable to read high score")
}

func (rs *Store) RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error) {
	best, err := maxScript.Run(rs.client, []string{scoreKeyPrefix + string(mode)}, score).Int()
	return best, errors.Wrap(err, "unable to record score")
}

func (rs *Store) UnlockedLevels(ctx context.Context) (int, error) {
	unlocked, err := rs.client.Get(unlockedKey).Int()
	if err == redis.Nil || (err == nil && unlocked < 1) {
		return 1, nil
	}
	return unlocked, errors.Wrap(err, "unable to read unlocked levels")
}

func (rs *Store) UnlockLevel(ctx context.Context, level int) (int, error) {
	unlocked, err := maxScript.Run(rs.client, []string{unlockedKey}, level).Int()
	if err != nil {
		return 0, errors.Wrap(err, "unable to unlock level")
	}
	if unlocked < 1 {
		unlocked = 1
	}
	return unlocked, nil
}

func (rs *Store) Settings(ctx context.Context) (store.Settings, error) {
	raw, err := rs.client.Get(settingsKey).Bytes()
	if err == redis.Nil {
		return store.DefaultSettings(), nil
	}
	if err != nil {
		return store.Settings{}, errors.Wrap(err, "unable to read settings")
	}
	var s store.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return store.DefaultSettings(), nil
	}
	return s.Normalize(), nil
}

func (rs *Store) PutSettings(ctx context.Context, s store.Settings) error {
	raw, err := json.Marshal(s.Normalize())
	if err != nil {
		return errors.Wrap(err, "unable to encode settings")
	}
	return errors.Wrap(rs.client.Set(settingsKey, raw, 0).Err(), "unable to write settings")
}
