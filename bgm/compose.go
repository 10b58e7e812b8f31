package bgm

import (
	"fmt"

	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/progression"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sequence"
	"github.com/jsphweid/bgmgen/voice"
)

const outOfChordRatio = 0.01

var (
	melodySubdivisions        = []int{8, 16}
	accompanimentBars         = []int{2, 4, 8}
	accompanimentSubdivisions = []int{4, 8, 16}
)

type ComposeOptions struct {
	Bars             int
	Accompaniments   int
	BaseOctave       int
	OffsetRandomness int

	// Pool defaults to voice.DefaultPool.
	Pool []voice.Option
}

type Part struct {
	Voice        voice.Voice       `json:"voice"`
	Progression  model.Progression `json:"progression"`
	Bars         int               `json:"bars"`
	Subdivisions int               `json:"subdivisions"`
	Sequence     model.Sequence    `json:"sequence"`
}

type Composition struct {
	Offset         int               `json:"offset"`
	Melody         Part              `json:"melody"`
	Progression    model.Progression `json:"progression"`
	Accompaniments []Part            `json:"accompaniments"`
}

// Parts lists the melody followed by the accompaniments.
func (c Composition) Parts() []Part {
	return append([]Part{c.Melody}, c.Accompaniments...)
}

func barOptions(bars int) []int {
	var res []int
	for _, b := range accompanimentBars {
		if b <= bars {
			res = append(res, b)
		}
	}
	return res
}

// Compose builds a melody over a random scale, infers a progression from
// it and accompanies it with parts generated from that progression.
func Compose(r *random.Random, opts ComposeOptions) (Composition, error) {
	if opts.Bars <= 0 {
		return Composition{}, fmt.Errorf("%w: bars must be positive, got %v", sequence.ErrInvalidArgument, opts.Bars)
	}
	if opts.Accompaniments < 0 || opts.OffsetRandomness < 0 {
		return Composition{}, fmt.Errorf("%w: negative accompaniments or offset randomness", sequence.ErrInvalidArgument)
	}
	if opts.Accompaniments > 0 && len(barOptions(opts.Bars)) == 0 {
		return Composition{}, fmt.Errorf("no accompaniment length fits %v bars: %w", opts.Bars, random.ErrEmptyCollection)
	}
	pool := opts.Pool
	if pool == nil {
		pool = voice.DefaultPool
	}

	var c Composition
	c.Offset = r.Int(-opts.OffsetRandomness, opts.OffsetRandomness)

	melodyVoice, err := voice.Pick(r, pool)
	if err != nil {
		return Composition{}, err
	}
	scale, err := progression.RandomScale(r)
	if err != nil {
		return Composition{}, err
	}
	subdivisions, err := random.Select(r, melodySubdivisions)
	if err != nil {
		return Composition{}, err
	}
	melody, err := sequence.Generate(r, scale, sequence.Options{
		Bars:            opts.Bars,
		Subdivisions:    subdivisions,
		OutOfChordRatio: sequence.Ratio(outOfChordRatio),
		BaseOctave:      opts.BaseOctave,
		PitchOffset:     c.Offset,
	})
	if err != nil {
		return Composition{}, fmt.Errorf("melody: %w", err)
	}
	c.Melody = Part{
		Voice:        melodyVoice,
		Progression:  scale,
		Bars:         opts.Bars,
		Subdivisions: subdivisions,
		Sequence:     melody,
	}

	c.Progression, err = progression.FromSequence(r, melody)
	if err != nil {
		return Composition{}, err
	}

	for i := 0; i < opts.Accompaniments; i++ {
		part, err := accompany(r, pool, c.Progression, opts)
		if err != nil {
			return Composition{}, fmt.Errorf("accompaniment %v: %w", i, err)
		}
		c.Accompaniments = append(c.Accompaniments, part)
	}
	return c, nil
}

func accompany(r *random.Random, pool []voice.Option, prog model.Progression, opts ComposeOptions) (Part, error) {
	v, err := voice.Pick(r, pool)
	if err != nil {
		return Part{}, err
	}
	bars, err := random.Select(r, barOptions(opts.Bars))
	if err != nil {
		return Part{}, err
	}
	subdivisions, err := random.Select(r, accompanimentSubdivisions)
	if err != nil {
		return Part{}, err
	}
	seq, err := sequence.Generate(r, prog, sequence.Options{
		Bars:            bars,
		Subdivisions:    subdivisions,
		OutOfChordRatio: sequence.Ratio(outOfChordRatio),
		BaseOctave:      opts.BaseOctave,
	})
	if err != nil {
		return Part{}, err
	}
	return Part{
		Voice:        v,
		Progression:  prog,
		Bars:         bars,
		Subdivisions: subdivisions,
		Sequence:     seq,
	}, nil
}
