package model

import "github.com/jsphweid/bgmgen/theory"

type ChordSpec struct {
	Base  theory.PitchClass `json:"base"`
	Chord []int             `json:"chord"`
}

// Progression is ordered in time, one ChordSpec per harmonic slot.
type Progression = []ChordSpec

type MatchResult struct {
	Base       theory.PitchClass `json:"base"`
	Chord      []int             `json:"chord"`
	MatchCount int               `json:"match_count"`
}

func (m MatchResult) Spec() ChordSpec {
	return ChordSpec{Base: m.Base, Chord: m.Chord}
}

// Notes expands the chord to absolute notes, base + offset, unreduced.
func (c ChordSpec) Notes() []int {
	res := make([]int, len(c.Chord))
	for i, o := range c.Chord {
		res[i] = int(c.Base) + o
	}
	return res
}

// Grid holds, per bar, one note list per chord slot.
type Grid = [][][]int
