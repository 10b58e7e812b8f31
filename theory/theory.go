package theory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/bgmgen/util"
)

var ErrInvalidNoteName = errors.New("invalid note name")

// PitchClass is a chromatic semitone in [0, 12), octave ignored.
type PitchClass int

const (
	C PitchClass = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B

	NumPitchClasses = 12
)

var pitchClassNames = [NumPitchClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NaturalRoots are the roots of the C major scale.
var NaturalRoots = []PitchClass{C, D, E, F, G, A, B}

// Mod12 reduces any integer to its pitch class.
func Mod12(n int) PitchClass {
	return PitchClass(util.Mod(n, NumPitchClasses))
}

func (pc PitchClass) Valid() bool {
	return pc >= 0 && pc < NumPitchClasses
}

func (pc PitchClass) String() string {
	if !pc.Valid() {
		return fmt.Sprintf("PitchClass(%d)", int(pc))
	}
	return pitchClassNames[pc]
}

// ParsePitchClass accepts "C".."B" with an optional "#".
func ParsePitchClass(s string) (PitchClass, error) {
	for i, name := range pitchClassNames {
		if strings.EqualFold(name, s) {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pitch class %q", ErrInvalidNoteName, s)
}

// NoteNumber is octave*12 + pitch class, so C0 == 0 and A4 == 57.
func NoteNumber(pc PitchClass, octave int) int {
	return octave*NumPitchClasses + int(pc)
}

// NoteOctave is floor(n/12), never below -1.
func NoteOctave(n int) int {
	octave := int(math.Floor(float64(n) / NumPitchClasses))
	return util.Max(octave, -1)
}

func NotePitchClass(n int) PitchClass {
	return Mod12(n)
}

// NoteName formats a note number like "C#4".
func NoteName(n int) string {
	return fmt.Sprintf("%v%d", NotePitchClass(n), NoteOctave(n))
}

// ParseNoteName is the inverse of NoteName for notes at or above C-1.
func ParseNoteName(s string) (int, error) {
	split := 1
	if len(s) > 1 && s[1] == '#' {
		split = 2
	}
	if len(s) <= split {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, s)
	}
	pc, err := ParsePitchClass(s[:split])
	if err != nil {
		return 0, err
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidNoteName, s)
	}
	return NoteNumber(pc, octave), nil
}

// FreqToNote maps a frequency in Hz to the nearest note number at or below it.
func FreqToNote(freq float64) int {
	return int(math.Floor(NumPitchClasses*math.Log2(freq/440) + float64(NoteNumber(A, 4))))
}
