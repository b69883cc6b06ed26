// Package sqlstore backs the player store with a postgres database.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq" // Import pq driver.
	log "github.com/sirupsen/logrus"

	"github.com/gridsnake/engine/config"
	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

const migrations = `
CREATE TABLE IF NOT EXISTS high_scores (
	mode VARCHAR(32) PRIMARY KEY,
	score INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS progress (
	id SMALLINT PRIMARY KEY,
	unlocked INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	id SMALLINT PRIMARY KEY,
	value jsonb
);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	if err = db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err = db.ExecContext(ctx, migrations); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(
	ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p) // re-throw panic after Rollback
		} else if err != nil {
			// err is non-nil; don't change it
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit() // err is nil; if Commit returns error update err
		}
	}()
	err = txFunc(tx)
	return err
}

func (s *Store) HighScore(ctx context.Context, mode rules.Mode) (int, error) {
	r := s.db.QueryRowContext(ctx,
		"SELECT score FROM high_scores WHERE mode=$1", string(mode))

	var score int
	if err := r.Scan(&score); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return score, nil
}

// RecordScore does a conditional upsert with GREATEST so concurrent writers
// can never lower the record.
func (s *Store) RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error) {
	var best int
	err := s.transact(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO high_scores (mode, score) VALUES ($1, $2)
		ON CONFLICT (mode)
		DO UPDATE SET score=GREATEST(high_scores.score, EXCLUDED.score)`,
			string(mode), score,
		); err != nil {
			return err
		}
		r := tx.QueryRowContext(ctx,
			"SELECT score FROM high_scores WHERE mode=$1", string(mode))
		return r.Scan(&best)
	})
	if err != nil {
		return 0, err
	}
	return best, nil
}

func (s *Store) UnlockedLevels(ctx context.Context) (int, error) {
	r := s.db.QueryRowContext(ctx, "SELECT unlocked FROM progress WHERE id=1")

	var unlocked int
	if err := r.Scan(&unlocked); err != nil {
		if err == sql.ErrNoRows {
			return 1, nil
		}
		return 0, err
	}
	if unlocked < 1 {
		unlocked = 1
	}
	return unlocked, nil
}

func (s *Store) UnlockLevel(ctx context.Context, level int) (int, error) {
	var unlocked int
	err := s.transact(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO progress (id, unlocked) VALUES (1, $1)
		ON CONFLICT (id)
		DO UPDATE SET unlocked=GREATEST(progress.unlocked, EXCLUDED.unlocked)`,
			level,
		); err != nil {
			return err
		}
		r := tx.QueryRowContext(ctx, "SELECT unlocked FROM progress WHERE id=1")
		return r.Scan(&unlocked)
	})
	if err != nil {
		return 0, err
	}
	if unlocked < 1 {
		unlocked = 1
	}
	return unlocked, nil
}

func (s *Store) Settings(ctx context.Context) (store.Settings, error) {
	r := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE id=1")

	var data []byte
	if err := r.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return store.DefaultSettings(), nil
		}
		return store.Settings{}, err
	}

	var settings store.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return store.DefaultSettings(), nil
	}
	return settings.Normalize(), nil
}

func (s *Store) PutSettings(ctx context.Context, settings store.Settings) error {
	data, err := json.Marshal(settings.Normalize())
	if err != nil {
		return err
	}
	return s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, value) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET value=$1`, data)
		return err
	})
}
