package progression

import (
	"fmt"

	"github.com/jsphweid/bgmgen/chord"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/theory"
)

func randomSpec(r *random.Random, shapes []theory.Shape) (model.ChordSpec, error) {
	base, err := random.Select(r, theory.NaturalRoots)
	if err != nil {
		return model.ChordSpec{}, err
	}
	shape, err := random.Select(r, shapes)
	if err != nil {
		return model.ChordSpec{}, err
	}
	return model.ChordSpec{Base: base, Chord: append([]int(nil), shape...)}, nil
}

var ErrInvalidArgument = model.ErrInvalidArgument

// Random draws length independent chords on natural roots.
func Random(r *random.Random, length int) (model.Progression, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length must not be negative, got %v", ErrInvalidArgument, length)
	}
	res := make(model.Progression, 0, length)
	for i := 0; i < length; i++ {
		spec, err := randomSpec(r, theory.Chords)
		if err != nil {
			return nil, fmt.Errorf("random progression: %w", err)
		}
		res = append(res, spec)
	}
	return res, nil
}

// FromSequence infers one chord per bar of seq. Bars with no sounding
// notes get a random chord instead.
func FromSequence(r *random.Random, seq model.Sequence) (model.Progression, error) {
	res := make(model.Progression, 0, len(seq))
	for i, bar := range seq {
		notes := chord.PitchClasses(model.Notes(bar))
		if len(notes) == 0 {
			spec, err := randomSpec(r, theory.Chords)
			if err != nil {
				return nil, fmt.Errorf("bar %v: %w", i, err)
			}
			res = append(res, spec)
			continue
		}

		match, err := chord.Match(notes)
		if err != nil {
			return nil, fmt.Errorf("bar %v: %w", i, err)
		}
		logger.Debug("matched bar", logger.Fields{
			"bar":   i,
			"notes": chord.CreateChordKey(model.Notes(bar)),
			"chord": chord.Label(match.Spec()),
			"match": match.MatchCount,
		})
		res = append(res, match.Spec())
	}
	return res, nil
}

// RandomScale returns a single-slot progression holding a scale, which
// makes the sequence generator use that scale for every bar.
func RandomScale(r *random.Random) (model.Progression, error) {
	spec, err := randomSpec(r, theory.Scales)
	if err != nil {
		return nil, fmt.Errorf("random scale: %w", err)
	}
	return model.Progression{spec}, nil
}
