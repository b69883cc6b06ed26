package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/gridsnake/engine/rules"
)

const sampleRate = beep.SampleRate(44100)

// tone is a sine cue: frequency in Hz and duration.
type tone struct {
	freq int
	dur  time.Duration
}

var cues = map[rules.EventKind]tone{
	rules.EventEat:           {freq: 880, dur: 60 * time.Millisecond},
	rules.EventGoldenEaten:   {freq: 1320, dur: 120 * time.Millisecond},
	rules.EventPoisonHit:     {freq: 220, dur: 150 * time.Millisecond},
	rules.EventClockBonus:    {freq: 990, dur: 90 * time.Millisecond},
	rules.EventLevelComplete: {freq: 660, dur: 300 * time.Millisecond},
	rules.EventGameOver:      {freq: 110, dur: 400 * time.Millisecond},
	rules.EventHighScore:     {freq: 1568, dur: 250 * time.Millisecond},
	rules.EventPause:         {freq: 440, dur: 40 * time.Millisecond},
	rules.EventResume:        {freq: 523, dur: 40 * time.Millisecond},
}

// TonePlayer synthesizes sine cues through the system speaker.
type TonePlayer struct{}

// NewTonePlayer initializes the speaker. Call Close when done; the speaker
// is a process-wide resource.
func NewTonePlayer() (*TonePlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(20*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "unable to initialize speaker")
	}
	return &TonePlayer{}, nil
}

func (p *TonePlayer) Play(e rules.EventKind) {
	cue, ok := cues[e]
	if !ok {
		return
	}
	streamer, err := generators.SinTone(sampleRate, cue.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(cue.dur), streamer))
}

func (p *TonePlayer) Close() error {
	speaker.Close()
	return nil
}
