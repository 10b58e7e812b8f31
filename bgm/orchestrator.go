package bgm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/jsphweid/bgmgen/util"
	"github.com/jsphweid/bgmgen/voice"
)

var ErrUnknownTrack = errors.New("unknown track")

const (
	beatsPerBar   = 4
	defaultSEName = "0"
)

type CreateOptions struct {
	Bars             int
	Accompaniments   int
	BaseOctave       int
	BPM              float64
	OffsetRandomness int
}

func DefaultCreateOptions() CreateOptions {
	return CreateOptions{
		Bars:           4,
		Accompaniments: 2,
		BaseOctave:     4,
		BPM:            120,
	}
}

type TrackHandle struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type track struct {
	handle      TrackHandle
	bpm         float64
	composition Composition
	instruments []Instrument
}

func (t *track) dispose() {
	for _, inst := range t.instruments {
		inst.Stop()
		inst.Dispose()
	}
	t.instruments = nil
}

type sound struct {
	buf    Buffer
	volume float64
}

type PlayOptions struct {
	// Name distinguishes cached renders of the same preset.
	Name string
	// Volume is a gain in decibels that sticks to the cached render.
	Volume *float64
}

// Orchestrator owns named tracks and cached sound effects. All generation
// and bookkeeping is serialized so the random stream stays reproducible.
type Orchestrator struct {
	mu     sync.Mutex
	engine Engine
	seed   uint32
	rng    *random.Random
	pool   []voice.Option
	tracks map[string]*track
	sounds map[string]*sound
}

type Option func(*Orchestrator)

func WithPool(pool []voice.Option) Option {
	return func(o *Orchestrator) {
		o.pool = pool
	}
}

func New(engine Engine, seed int, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: engine,
		pool:   voice.DefaultPool,
		tracks: make(map[string]*track),
		sounds: make(map[string]*sound),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.SetSeed(seed)
	return o
}

// SetSeed restarts the composition stream used by later CreateBGM calls.
func (o *Orchestrator) SetSeed(seed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seed = uint32(seed)
	o.rng = random.New(o.seed)
}

func (o *Orchestrator) derived(key string) *random.Random {
	return random.New(o.seed + uint32(util.HashString(key)))
}

// CreateBGM composes a track and installs it under name, disposing any
// track already there. A failed call leaves the previous track in place.
func (o *Orchestrator) CreateBGM(name string, opts CreateOptions) (TrackHandle, error) {
	if opts.BPM <= 0 {
		return TrackHandle{}, fmt.Errorf("bpm must be positive, got %v", opts.BPM)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	c, err := Compose(o.rng, ComposeOptions{
		Bars:             opts.Bars,
		Accompaniments:   opts.Accompaniments,
		BaseOctave:       opts.BaseOctave,
		OffsetRandomness: opts.OffsetRandomness,
		Pool:             o.pool,
	})
	if err != nil {
		return TrackHandle{}, fmt.Errorf("create %q: %w", name, err)
	}

	if old, ok := o.tracks[name]; ok {
		old.dispose()
		delete(o.tracks, name)
	}

	t := &track{
		handle:      TrackHandle{ID: uuid.New(), Name: name},
		bpm:         opts.BPM,
		composition: c,
	}
	for _, part := range c.Parts() {
		inst, err := newInstrument(o.engine, part.Voice)
		if err != nil {
			t.dispose()
			return TrackHandle{}, fmt.Errorf("create %q: %w", name, err)
		}
		t.instruments = append(t.instruments, inst)
	}
	o.tracks[name] = t

	logger.Info("created bgm", logger.Fields{
		"name":           name,
		"id":             t.handle.ID,
		"bars":           opts.Bars,
		"accompaniments": len(c.Accompaniments),
		"offset":         c.Offset,
	})
	return t.handle, nil
}

// Composition returns what is installed under name.
func (o *Orchestrator) Composition(name string) (Composition, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.tracks[name]
	if !ok {
		return Composition{}, false
	}
	return t.composition, true
}

// PlayBGM schedules one cycle of the track from the engine's current time:
// the melody once, and every accompaniment looped over the same span.
func (o *Orchestrator) PlayBGM(name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, ok := o.tracks[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, name)
	}

	perf := o.derived(name)
	barTime := beatsPerBar * 60 / t.bpm
	start := o.engine.Now()
	end := float64(len(t.composition.Melody.Sequence)) * barTime

	scheduled := 0
	for i, part := range t.composition.Parts() {
		inst := t.instruments[i]
		loop := float64(len(part.Sequence)) * barTime
		if loop <= 0 {
			continue
		}
		for offset := 0.0; offset < end; offset += loop {
			for b, bar := range part.Sequence {
				for s, cell := range bar {
					at := offset + float64(b)*barTime + float64(s)*barTime/float64(len(bar))
					if at >= end {
						break
					}
					if cell.IsRest() {
						continue
					}
					duration := perf.Float(0.05, 0.1)
					velocity := perf.Float(0.5, 1)
					inst.ScheduleNote(theory.NoteName(cell.Note), velocity, start+at, duration)
					scheduled++
				}
			}
		}
	}

	logger.Info("playing bgm", logger.Fields{"name": name, "notes": scheduled, "seconds": end})
	return nil
}

func (o *Orchestrator) StopBGM(name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, ok := o.tracks[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, name)
	}
	for _, inst := range t.instruments {
		inst.Stop()
	}
	return nil
}

// Tracks lists the installed track names in order.
func (o *Orchestrator) Tracks() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return util.GetKeys(o.tracks)
}

// ResetBGM stops and disposes every track.
func (o *Orchestrator) ResetBGM() {
	o.mu.Lock()
	defer o.mu.Unlock()

	names := util.GetKeys(o.tracks)
	for _, name := range names {
		o.tracks[name].dispose()
		delete(o.tracks, name)
	}
	logger.Debug("reset bgm", logger.Fields{"tracks": names})
}

// PlaySE plays a sound effect. The first play of a preset and name renders
// it from a stream derived from the seed; later plays reuse that render.
func (o *Orchestrator) PlaySE(preset sfx.Preset, opts PlayOptions) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = defaultSEName
	}
	key := preset.String() + name

	s, ok := o.sounds[key]
	if !ok {
		params, err := preset.Generate(o.derived(key))
		if err != nil {
			return err
		}
		buf, err := o.engine.RenderEffect(params)
		if err != nil {
			return fmt.Errorf("render %v: %w", preset, err)
		}
		s = &sound{buf: buf}
		o.sounds[key] = s
		logger.Debug("rendered sound effect", logger.Fields{"key": key, "generator": params.Generator})
	}
	if opts.Volume != nil {
		s.volume = *opts.Volume
	}
	s.buf.Play(o.engine.Now(), s.volume)
	return nil
}

func (o *Orchestrator) ResetSE() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for key, s := range o.sounds {
		s.buf.Dispose()
		delete(o.sounds, key)
	}
}
