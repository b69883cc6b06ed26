// Package audio plays short cues for game events. Playback is fire and
// forget; a failed or missing audio device never affects the simulation.
package audio

import "github.com/gridsnake/engine/rules"

// Player accepts game events and plays the matching cue, if any.
type Player interface {
	Play(e rules.EventKind)
	Close() error
}

// NopPlayer discards every event. Used when audio is disabled or the
// speaker fails to initialize.
type NopPlayer struct{}

func (NopPlayer) Play(rules.EventKind) {}
func (NopPlayer) Close() error         { return nil }
