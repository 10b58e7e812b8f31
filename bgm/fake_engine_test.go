package bgm

import (
	"errors"

	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/voice"
)

type scheduledNote struct {
	name     string
	velocity float64
	at       float64
	duration float64
}

type fakeInstrument struct {
	kind     string
	notes    []scheduledNote
	stopped  int
	disposed bool
}

func (f *fakeInstrument) ScheduleNote(name string, velocity, at, duration float64) {
	f.notes = append(f.notes, scheduledNote{name, velocity, at, duration})
}

func (f *fakeInstrument) Stop() {
	f.stopped++
}

func (f *fakeInstrument) Dispose() {
	f.disposed = true
}

type fakeBuffer struct {
	params   sfx.Params
	plays    []float64
	disposed bool
}

func (f *fakeBuffer) Play(at, volume float64) {
	f.plays = append(f.plays, volume)
}

func (f *fakeBuffer) Dispose() {
	f.disposed = true
}

type fakeEngine struct {
	now         float64
	instruments []*fakeInstrument
	buffers     []*fakeBuffer
	failSynthAt int
}

var errEngine = errors.New("engine failure")

func (e *fakeEngine) Now() float64 {
	return e.now
}

func (e *fakeEngine) NewSynth(oscillator string, env voice.Envelope) (Instrument, error) {
	if e.failSynthAt > 0 && len(e.instruments)+1 == e.failSynthAt {
		return nil, errEngine
	}
	inst := &fakeInstrument{kind: oscillator}
	e.instruments = append(e.instruments, inst)
	return inst, nil
}

func (e *fakeEngine) RenderEffect(params sfx.Params) (Buffer, error) {
	buf := &fakeBuffer{params: params}
	e.buffers = append(e.buffers, buf)
	return buf, nil
}

func (e *fakeEngine) NewSampler(buf Buffer, root string) (Instrument, error) {
	inst := &fakeInstrument{kind: "sampler " + root}
	e.instruments = append(e.instruments, inst)
	return inst, nil
}

func (e *fakeEngine) live() []*fakeInstrument {
	var res []*fakeInstrument
	for _, inst := range e.instruments {
		if !inst.disposed {
			res = append(res, inst)
		}
	}
	return res
}
