package store

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gridsnake/engine/rules"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var storeCalls = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "gridsnake",
		Subsystem: "store",
		Name:      "calls",
		Help:      "Calls processed by the store.",
	},
	[]string{"method"},
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) HighScore(ctx context.Context, mode rules.Mode) (int, error) {
	defer instrument("HighScore")()
	return m.s.HighScore(ctx, mode)
}

func (m *metrics) RecordScore(ctx context.Context, mode rules.Mode, score int) (int, error) {
	defer instrument("RecordScore")()
	return m.s.RecordScore(ctx, mode, score)
}

func (m *metrics) UnlockedLevels(ctx context.Context) (int, error) {
	defer instrument("UnlockedLevels")()
	return m.s.UnlockedLevels(ctx)
}

func (m *metrics) UnlockLevel(ctx context.Context, level int) (int, error) {
	defer instrument("UnlockLevel")()
	return m.s.UnlockLevel(ctx, level)
}

func (m *metrics) Settings(ctx context.Context) (Settings, error) {
	defer instrument("Settings")()
	return m.s.Settings(ctx)
}

func (m *metrics) PutSettings(ctx context.Context, s Settings) error {
	defer instrument("PutSettings")()
	return m.s.PutSettings(ctx, s)
}
