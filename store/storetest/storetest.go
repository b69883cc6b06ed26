// Package storetest holds the conformance suite every store backend must
// pass. Backend tests call Suite with a fresh store per subtest.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/store"
)

func testDefaults(t *testing.T, s store.Store) {
	ctx := context.Background()

	best, err := s.HighScore(ctx, rules.ModeEndless)
	require.NoError(t, err)
	require.Equal(t, 0, best, "no recorded run means high score zero")

	unlocked, err := s.UnlockedLevels(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, unlocked, "level one is always playable")

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, store.DefaultSettings(), settings)
}

func testHighScorePerMode(t *testing.T, s store.Store) {
	ctx := context.Background()

	best, err := s.RecordScore(ctx, rules.ModeEndless, 120)
	require.NoError(t, err)
	require.Equal(t, 120, best)

	// A worse run never lowers the record.
	best, err = s.RecordScore(ctx, rules.ModeEndless, 40)
	require.NoError(t, err)
	require.Equal(t, 120, best)

	best, err = s.RecordScore(ctx, rules.ModeEndless, 300)
	require.NoError(t, err)
	require.Equal(t, 300, best)

	// Modes are independent records.
	best, err = s.HighScore(ctx, rules.ModeTime)
	require.NoError(t, err)
	require.Equal(t, 0, best)

	_, err = s.RecordScore(ctx, rules.ModeTime, 70)
	require.NoError(t, err)
	best, err = s.HighScore(ctx, rules.ModeEndless)
	require.NoError(t, err)
	require.Equal(t, 300, best)
}

func testUnlockMonotonic(t *testing.T, s store.Store) {
	ctx := context.Background()

	unlocked, err := s.UnlockLevel(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 3, unlocked)

	// Replaying an early level must not re-lock later ones.
	unlocked, err = s.UnlockLevel(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 3, unlocked)

	unlocked, err = s.UnlockedLevels(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, unlocked)
}

func testSettingsRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	want := store.Settings{
		Difficulty: rules.DifficultyHard,
		FruitKind:  rules.FruitCherry,
		Mode:       rules.ModeTime,
	}
	require.NoError(t, s.PutSettings(ctx, want))

	got, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func testSettingsNormalized(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.PutSettings(ctx, store.Settings{
		Difficulty: "nightmare",
		FruitKind:  "durian",
		Mode:       "battle-royale",
	}))

	got, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, store.DefaultSettings(), got,
		"unknown values fall back to defaults instead of breaking new runs")
}

func testConcurrentRecords(t *testing.T, s store.Store) {
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 1; i <= 20; i++ {
		go func(score int) {
			defer wg.Done()
			_, err := s.RecordScore(ctx, rules.ModeEndless, score*10)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	best, err := s.HighScore(ctx, rules.ModeEndless)
	require.NoError(t, err)
	require.Equal(t, 200, best, "the maximum always wins regardless of ordering")
}

// Suite will execute the store conformance suite. fresh must return an empty
// store; it runs before every subtest.
func Suite(t *testing.T, fresh func() store.Store) {
	t.Run("Defaults", func(t *testing.T) { testDefaults(t, fresh()) })
	t.Run("HighScorePerMode", func(t *testing.T) { testHighScorePerMode(t, fresh()) })
	t.Run("UnlockMonotonic", func(t *testing.T) { testUnlockMonotonic(t, fresh()) })
	t.Run("SettingsRoundTrip", func(t *testing.T) { testSettingsRoundTrip(t, fresh()) })
	t.Run("SettingsNormalized", func(t *testing.T) { testSettingsNormalized(t, fresh()) })
	t.Run("ConcurrentRecords", func(t *testing.T) { testConcurrentRecords(t, fresh()) })
}
