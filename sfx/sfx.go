package sfx

import (
	"fmt"
	"strings"

	"github.com/jsphweid/bgmgen/random"
)

type Generator string

const (
	Square Generator = "square"
	Saw    Generator = "saw"
	Sine   Generator = "sine"
	Noise  Generator = "noise"
)

type Frequency struct {
	Start        float64 `json:"start"`
	Slide        float64 `json:"slide"`
	ChangeSpeed  float64 `json:"change_speed,omitempty"`
	ChangeAmount float64 `json:"change_amount,omitempty"`
}

type Volume struct {
	Master  float64 `json:"master"`
	Attack  float64 `json:"attack"`
	Sustain float64 `json:"sustain"`
	Punch   float64 `json:"punch"`
	Decay   float64 `json:"decay"`
}

// Params is everything an external renderer needs to synthesize an effect.
type Params struct {
	Generator Generator `json:"generator"`
	Frequency Frequency `json:"frequency"`
	Volume    Volume    `json:"volume"`
}

type Preset int

const (
	Coin Preset = iota
	Laser
	Explosion
	Powerup
	Hit
	Jump
	Select
	Lucky
)

var presetNames = []string{"coin", "laser", "explosion", "powerup", "hit", "jump", "select", "lucky"}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

func ParsePreset(name string) (Preset, error) {
	for i, n := range presetNames {
		if strings.EqualFold(n, name) {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sound effect preset %q", name)
}

func base(gen Generator) Params {
	return Params{
		Generator: gen,
		Volume:    Volume{Master: 0.4, Sustain: 0.1, Decay: 0.2},
	}
}

// Generate draws a parameter set for the preset from r.
func (p Preset) Generate(r *random.Random) (Params, error) {
	switch p {
	case Coin:
		params := base(Square)
		params.Frequency.Start = r.Float(660, 1540)
		params.Volume.Sustain = r.Float(0, 0.1)
		params.Volume.Decay = r.Float(0.1, 0.5)
		params.Volume.Punch = r.Float(0.3, 0.6)
		if r.Bool(0.5) {
			params.Frequency.ChangeSpeed = r.Float(0.1, 0.25)
			params.Frequency.ChangeAmount = r.Float(4, 12)
		}
		return params, nil
	case Laser:
		gen, err := random.Select(r, []Generator{Square, Saw, Sine})
		if err != nil {
			return Params{}, err
		}
		params := base(gen)
		params.Frequency.Start = r.Float(500, 1500)
		params.Frequency.Slide = r.Float(-0.6, -0.2)
		params.Volume.Sustain = r.Float(0.1, 0.3)
		params.Volume.Decay = r.Float(0, 0.4)
		return params, nil
	case Explosion:
		params := base(Noise)
		params.Frequency.Start = r.Float(40, 400)
		params.Frequency.Slide = r.Float(-0.4, 0.1)
		params.Volume.Sustain = r.Float(0.1, 0.4)
		params.Volume.Punch = r.Float(0.2, 0.8)
		params.Volume.Decay = r.Float(0.3, 0.8)
		return params, nil
	case Powerup:
		gen, err := random.Select(r, []Generator{Square, Saw})
		if err != nil {
			return Params{}, err
		}
		params := base(gen)
		params.Frequency.Start = r.Float(220, 660)
		params.Frequency.Slide = r.Float(0.1, 0.4)
		params.Volume.Sustain = r.Float(0.1, 0.5)
		params.Volume.Decay = r.Float(0.1, 0.5)
		return params, nil
	case Hit:
		gen, err := random.Select(r, []Generator{Noise, Square})
		if err != nil {
			return Params{}, err
		}
		params := base(gen)
		params.Frequency.Start = r.Float(100, 400)
		params.Frequency.Slide = r.Float(-0.4, -0.1)
		params.Volume.Sustain = r.Float(0, 0.1)
		params.Volume.Decay = r.Float(0.05, 0.25)
		return params, nil
	case Jump:
		params := base(Square)
		params.Frequency.Start = r.Float(220, 550)
		params.Frequency.Slide = r.Float(0.1, 0.3)
		params.Volume.Sustain = r.Float(0.1, 0.4)
		params.Volume.Decay = r.Float(0.1, 0.3)
		return params, nil
	case Select:
		params := base(Square)
		params.Frequency.Start = r.Float(440, 1320)
		params.Volume.Sustain = r.Float(0, 0.05)
		params.Volume.Decay = r.Float(0.05, 0.15)
		return params, nil
	case Lucky:
		other, err := random.Select(r, []Preset{Coin, Laser, Explosion, Powerup, Hit, Jump, Select})
		if err != nil {
			return Params{}, err
		}
		return other.Generate(r)
	default:
		return Params{}, fmt.Errorf("unknown sound effect preset %v", int(p))
	}
}
