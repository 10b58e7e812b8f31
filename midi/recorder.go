package midi

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/jsphweid/bgmgen/bgm"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/jsphweid/bgmgen/util"
	"github.com/jsphweid/bgmgen/voice"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type recordedNote struct {
	key      uint8
	velocity uint8
	at       float64
	duration float64
}

type part struct {
	rec      *Recorder
	name     string
	channel  uint8
	program  uint8
	notes    []recordedNote
	disposed bool
}

func (p *part) ScheduleNote(name string, velocity, at, duration float64) {
	key, err := KeyForName(name)
	if err != nil {
		logger.Warn("dropping note", logger.Fields{"part": p.name, "note": name, "error": err})
		return
	}
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	p.notes = append(p.notes, recordedNote{
		key:      key,
		velocity: uint8(util.Clamp(math.Round(velocity*maxMidiKey), 1, maxMidiKey)),
		at:       at,
		duration: duration,
	})
}

// Stop drops everything scheduled. Nothing sounds before the file is written.
func (p *part) Stop() {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	p.notes = nil
}

func (p *part) Dispose() {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	p.disposed = true
	p.notes = nil
}

type effect struct {
	rec      *Recorder
	key      uint8
	disposed bool
}

// Play places a hit on the drum channel. Volume is in decibels.
func (e *effect) Play(at, volume float64) {
	e.rec.mu.Lock()
	defer e.rec.mu.Unlock()
	if e.disposed {
		return
	}
	velocity := util.Clamp(math.Round(100*math.Pow(10, volume/20)), 1, maxMidiKey)
	e.rec.hits = append(e.rec.hits, recordedNote{
		key:      e.key,
		velocity: uint8(velocity),
		at:       at,
		duration: 0.1,
	})
}

func (e *effect) Dispose() {
	e.rec.mu.Lock()
	defer e.rec.mu.Unlock()
	e.disposed = true
}

// Recorder is an offline bgm.Engine. Scheduled notes are collected and
// written out as a Standard MIDI File, one track per instrument.
type Recorder struct {
	mu    sync.Mutex
	bpm   float64
	ticks smf.MetricTicks
	now   float64
	parts []*part
	hits  []recordedNote
}

var _ bgm.Engine = (*Recorder)(nil)

func NewRecorder(bpm float64) *Recorder {
	if bpm <= 0 {
		bpm = defaultTempo
	}
	return &Recorder{bpm: bpm, ticks: smf.MetricTicks(defaultTicks)}
}

func (r *Recorder) Now() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now
}

// Advance moves the clock forward, e.g. to queue a second cycle.
func (r *Recorder) Advance(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now += seconds
}

// programFor maps an oscillator or generator name onto a General MIDI lead.
func programFor(name string) uint8 {
	switch {
	case strings.HasSuffix(name, "square"):
		return 80
	case strings.HasSuffix(name, "sawtooth"), name == string(sfx.Saw):
		return 81
	case strings.HasSuffix(name, "triangle"), name == string(sfx.Sine):
		return 73
	case name == string(sfx.Noise):
		return 127
	default:
		return 0
	}
}

// nextChannel skips the drum channel and wraps after the last one.
func (r *Recorder) nextChannel() uint8 {
	ch := uint8(len(r.parts) % 15)
	if ch >= drumChannel {
		ch++
	}
	return ch
}

func (r *Recorder) addPart(name string, program uint8) *part {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &part{rec: r, name: name, channel: r.nextChannel(), program: program}
	r.parts = append(r.parts, p)
	return p
}

func (r *Recorder) NewSynth(oscillator string, env voice.Envelope) (bgm.Instrument, error) {
	return r.addPart(oscillator, programFor(oscillator)), nil
}

func (r *Recorder) RenderEffect(params sfx.Params) (bgm.Buffer, error) {
	if params.Frequency.Start <= 0 {
		return nil, fmt.Errorf("effect frequency must be positive, got %v", params.Frequency.Start)
	}
	key, ok := keyFor(theory.FreqToNote(params.Frequency.Start))
	if !ok {
		key = maxMidiKey
	}
	return &effect{rec: r, key: key}, nil
}

func (r *Recorder) NewSampler(buf bgm.Buffer, root string) (bgm.Instrument, error) {
	e, ok := buf.(*effect)
	if !ok || e.rec != r {
		return nil, fmt.Errorf("buffer %T was not rendered by this recorder", buf)
	}
	if _, err := KeyForName(root); err != nil {
		return nil, err
	}
	return r.addPart("sampler "+root, programFor(string(sfx.Noise))), nil
}

func (r *Recorder) toTicks(seconds float64) int64 {
	return int64(math.Round(seconds * r.bpm / 60 * float64(r.ticks.Resolution())))
}

type timedMessage struct {
	tick int64
	off  bool
	msg  gomidi.Message
}

func (r *Recorder) track(name string, channel uint8, program *uint8, notes []recordedNote) smf.Track {
	var msgs []timedMessage
	for _, n := range notes {
		on := r.toTicks(n.at)
		off := util.Max(on+1, r.toTicks(n.at+n.duration))
		msgs = append(msgs,
			timedMessage{on, false, gomidi.NoteOn(channel, n.key, n.velocity)},
			timedMessage{off, true, gomidi.NoteOff(channel, n.key)},
		)
	}
	// note offs first so repeated keys retrigger
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	if program != nil {
		tr.Add(0, gomidi.ProgramChange(channel, *program))
	}
	var last int64
	for _, m := range msgs {
		tr.Add(uint32(m.tick-last), m.msg)
		last = m.tick
	}
	tr.Close(0)
	return tr
}

// WriteTo writes a type 1 file: a tempo track followed by one track per
// live instrument and, if any effects were played, a drum track.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := smf.New()
	s.TimeFormat = r.ticks

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(beatsPerBar, 4))
	tempo.Add(0, smf.MetaTempo(r.bpm))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return 0, fmt.Errorf("error adding tempo track: %w", err)
	}

	live := 0
	for _, p := range r.parts {
		if p.disposed {
			continue
		}
		program := p.program
		if err := s.Add(r.track(p.name, p.channel, &program, p.notes)); err != nil {
			return 0, fmt.Errorf("error adding track %q: %w", p.name, err)
		}
		live++
	}
	if len(r.hits) > 0 {
		if err := s.Add(r.track("effects", effectChannel, nil, r.hits)); err != nil {
			return 0, fmt.Errorf("error adding effects track: %w", err)
		}
	}

	logger.Debug("writing midi", logger.Fields{"tracks": live, "effects": len(r.hits), "bpm": r.bpm})
	return s.WriteTo(w)
}
