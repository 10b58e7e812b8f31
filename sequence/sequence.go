package sequence

import (
	"fmt"
	"math"

	"github.com/jsphweid/bgmgen/chord"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/jsphweid/bgmgen/util"
	"golang.org/x/exp/slices"
)

var ErrInvalidArgument = model.ErrInvalidArgument

const (
	maxDefaultRestRatio       = 0.9
	maxDefaultOutOfChordRatio = 0.2
	walkStddev                = 0.2
	outOfChordSpread          = 2
)

type Options struct {
	Bars         int
	Subdivisions int

	// RestRatio and OutOfChordRatio are drawn per call when nil.
	RestRatio       *float64
	OutOfChordRatio *float64

	BaseOctave  int
	PitchOffset int
}

// Ratio is a helper for filling the optional ratios.
func Ratio(v float64) *float64 {
	return &v
}

// SubNotes spreads prog over bars, cycling when there are more bars than
// chords and grouping several chords per bar when there are fewer.
func SubNotes(prog model.Progression, bars int) (model.Grid, error) {
	if bars <= 0 {
		return nil, fmt.Errorf("%w: bars must be positive, got %v", ErrInvalidArgument, bars)
	}
	if len(prog) == 0 {
		return nil, fmt.Errorf("%w: empty progression", ErrInvalidArgument)
	}
	for i, spec := range prog {
		if len(spec.Chord) == 0 {
			return nil, fmt.Errorf("%w: chord %v of the progression has no notes", ErrInvalidArgument, i)
		}
	}

	perBar := util.Max(1, len(prog)/bars)
	grid := make(model.Grid, bars)
	for i := range grid {
		grid[i] = make([][]int, perBar)
		for j := range grid[i] {
			spec := prog[(i*perBar+j)%len(prog)]
			logger.Debug("sub notes", logger.Fields{"bar": i, "slot": j, "chord": chord.Label(spec)})
			grid[i][j] = spec.Notes()
		}
	}
	return grid, nil
}

// Generate walks a gaussian cursor over the candidate notes of every cell,
// then applies the out-of-chord, offset, octave and rest passes in that order.
func Generate(r *random.Random, prog model.Progression, opts Options) (model.Sequence, error) {
	if opts.Subdivisions <= 0 {
		return nil, fmt.Errorf("%w: subdivisions must be positive, got %v", ErrInvalidArgument, opts.Subdivisions)
	}
	// resolve the grid before any draw so a bad call leaves r untouched
	grid, err := SubNotes(prog, opts.Bars)
	if err != nil {
		return nil, err
	}

	var restRatio, outOfChordRatio float64
	if opts.RestRatio != nil {
		restRatio = util.Clamp(*opts.RestRatio, 0, 1)
	} else {
		restRatio = r.Float(0, maxDefaultRestRatio)
	}
	if opts.OutOfChordRatio != nil {
		outOfChordRatio = util.Clamp(*opts.OutOfChordRatio, 0, 1)
	} else {
		outOfChordRatio = r.Float(0, maxDefaultOutOfChordRatio)
	}

	current := r.Float(0, 1)
	step := r.Normal(0, walkStddev)

	notes := make([][]int, opts.Bars)
	for i := range notes {
		notes[i] = make([]int, opts.Subdivisions)
		for j := range notes[i] {
			slot := int(math.Floor(float64(j) / float64(opts.Subdivisions) * float64(len(grid[i]))))
			candidates := append([]int(nil), grid[i][slot]...)
			slices.Sort(candidates)

			current += step()
			scaled := int(math.Floor(current * float64(len(candidates))))
			index := util.Mod(scaled, len(candidates))
			octave := int(math.Floor(current)) * theory.NumPitchClasses
			notes[i][j] = candidates[index] + octave
		}
	}

	for i := range notes {
		for j := range notes[i] {
			if r.Bool(outOfChordRatio) {
				notes[i][j] += r.Int(-outOfChordSpread, outOfChordSpread)
			}
		}
	}

	shift := opts.PitchOffset + opts.BaseOctave*theory.NumPitchClasses
	seq := make(model.Sequence, opts.Bars)
	for i := range notes {
		seq[i] = make(model.Bar, opts.Subdivisions)
		for j, n := range notes[i] {
			seq[i][j] = model.NoteCell(n + shift)
		}
	}

	for i := range seq {
		for j := range seq[i] {
			if r.Bool(restRatio) {
				seq[i][j] = model.Rest
			}
		}
	}

	logger.Debug("generated sequence", logger.Fields{
		"bars":         opts.Bars,
		"subdivisions": opts.Subdivisions,
		"rest":         restRatio,
		"out_of_chord": outOfChordRatio,
	})
	return seq, nil
}
