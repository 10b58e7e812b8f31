package voice

import (
	"encoding/json"
	"fmt"

	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/theory"
)

type Kind int

const (
	Tonal Kind = iota
	SampledEffect
)

func (k Kind) String() string {
	switch k {
	case Tonal:
		return "tonal"
	case SampledEffect:
		return "sampled_effect"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

type Envelope struct {
	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Sustain float64 `json:"sustain"`
	Release float64 `json:"release"`
}

// Voice describes how a part should sound. Tonal voices use Oscillator and
// Envelope; sampled voices use Effect, pitched so Effect sounds at Root.
type Voice struct {
	Kind       Kind        `json:"kind"`
	Oscillator string      `json:"oscillator,omitempty"`
	Envelope   *Envelope   `json:"envelope,omitempty"`
	Effect     *sfx.Params `json:"effect,omitempty"`
	Root       string      `json:"root,omitempty"`
}

// Option is one entry of an instrument pool, either an oscillator name or
// an effect preset.
type Option struct {
	Kind       Kind
	Oscillator string
	Preset     sfx.Preset
}

func Oscillator(name string) Option {
	return Option{Kind: Tonal, Oscillator: name}
}

func Effect(p sfx.Preset) Option {
	return Option{Kind: SampledEffect, Preset: p}
}

// DefaultPool is the instrument pool the composer picks parts from.
var DefaultPool = []Option{
	Oscillator("sawtooth"),
	Oscillator("fmsawtooth"),
	Oscillator("amsawtooth"),
	Oscillator("square"),
	Oscillator("fatsquare"),
	Oscillator("fmtriangle"),
	Effect(sfx.Laser),
	Effect(sfx.Select),
	Effect(sfx.Explosion),
	Effect(sfx.Hit),
	Effect(sfx.Hit),
}

// Pick selects an option from pool and resolves it into a Voice.
func Pick(r *random.Random, pool []Option) (Voice, error) {
	opt, err := random.Select(r, pool)
	if err != nil {
		return Voice{}, fmt.Errorf("pick voice: %w", err)
	}
	return Resolve(r, opt)
}

func Resolve(r *random.Random, opt Option) (Voice, error) {
	switch opt.Kind {
	case Tonal:
		return Voice{
			Kind:       Tonal,
			Oscillator: opt.Oscillator,
			Envelope: &Envelope{
				Attack:  r.Float(0, 0.05),
				Decay:   r.Float(0, 0.1),
				Sustain: r.Float(0.1, 1),
				Release: r.Float(0, 0.5),
			},
		}, nil
	case SampledEffect:
		params, err := opt.Preset.Generate(r)
		if err != nil {
			return Voice{}, err
		}
		return Voice{
			Kind:   SampledEffect,
			Effect: &params,
			Root:   theory.NoteName(theory.FreqToNote(params.Frequency.Start)),
		}, nil
	default:
		return Voice{}, fmt.Errorf("unknown voice kind %v", opt.Kind)
	}
}
