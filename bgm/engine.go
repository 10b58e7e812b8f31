package bgm

import (
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/voice"
)

// Engine is the host audio layer. Times are seconds on the engine's
// transport clock.
type Engine interface {
	Now() float64
	NewSynth(oscillator string, env voice.Envelope) (Instrument, error)
	RenderEffect(params sfx.Params) (Buffer, error)
	// NewSampler plays buf at root and repitches it for other notes.
	NewSampler(buf Buffer, root string) (Instrument, error)
}

type Instrument interface {
	// ScheduleNote sounds a named pitch such as "C#4". Fire and forget.
	ScheduleNote(name string, velocity, at, duration float64)
	Stop()
	Dispose()
}

type Buffer interface {
	Play(at, volume float64)
	Dispose()
}

func newInstrument(e Engine, v voice.Voice) (Instrument, error) {
	switch v.Kind {
	case voice.SampledEffect:
		buf, err := e.RenderEffect(*v.Effect)
		if err != nil {
			return nil, err
		}
		inst, err := e.NewSampler(buf, v.Root)
		if err != nil {
			buf.Dispose()
			return nil, err
		}
		return inst, nil
	default:
		return e.NewSynth(v.Oscillator, *v.Envelope)
	}
}
