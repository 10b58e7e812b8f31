package theory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMod12(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(B, Mod12(-1))
	assert.Equal(C, Mod12(24))
	assert.Equal(G, Mod12(-5))
}

func TestNoteNumberAndOctave(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, NoteNumber(C, 0))
	assert.Equal(57, NoteNumber(A, 4))
	assert.Equal(4, NoteOctave(57))
	assert.Equal(-1, NoteOctave(-1))
	assert.Equal(-1, NoteOctave(-40))
	assert.Equal(B, NotePitchClass(-1))
}

func TestNoteName(t *testing.T) {
	cases := map[int]string{
		0:  "C0",
		13: "C#1",
		57: "A4",
		48: "C4",
		-1: "B-1",
		59: "B4",
	}
	for n, name := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, NoteName(n))
		})
	}
}

func TestNoteNameRoundTrip(t *testing.T) {
	for n := -12; n < 12*10; n++ {
		parsed, err := ParseNoteName(NoteName(n))
		require.NoError(t, err)
		require.Equal(t, n, parsed, "note %v", n)
		require.Equal(t, n, NoteNumber(NotePitchClass(n), NoteOctave(n)))
	}
}

func TestParseNoteNameErrors(t *testing.T) {
	for _, s := range []string{"", "C", "H4", "C#", "Cx"} {
		t.Run(fmt.Sprintf("invalid %q", s), func(t *testing.T) {
			_, err := ParseNoteName(s)
			assert.True(t, errors.Is(err, ErrInvalidNoteName))
		})
	}
}

func TestFreqToNote(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(57, FreqToNote(440))
	assert.Equal(69, FreqToNote(880))
	assert.Equal(48, FreqToNote(261.63))
}

func TestTablesSelfMatch(t *testing.T) {
	shapes := append(append([]Shape{}, Chords...), Scales...)
	for _, shape := range shapes {
		norm := Normalize(shape)
		set := make(map[PitchClass]bool)
		for _, pc := range norm {
			set[pc] = true
		}
		count := 0
		for _, pc := range Normalize(shape) {
			if set[pc] {
				count++
			}
		}
		assert.Equal(t, len(norm), count)
		assert.Equal(t, len(shape), len(norm), "%v has duplicate offsets mod 12", shape)
	}
}

func TestEveryChordHasRoot(t *testing.T) {
	for _, c := range Chords {
		assert.Contains(t, c, 0)
	}
}

func TestShapeName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("M", ShapeName([]int{0, 4, 7}))
	assert.Equal("m7", ShapeName([]int{0, 3, -5, -2}))
	assert.Equal("pentatonic", ShapeName([]int{1, 3, 6, 8, 10}))
	assert.Equal("?", ShapeName([]int{0, 1}))
}

func TestPitchClassString(t *testing.T) {
	assert.Equal(t, "F#", Fs.String())
	assert.Equal(t, "PitchClass(12)", PitchClass(12).String())
	pc, err := ParsePitchClass("a#")
	require.NoError(t, err)
	assert.Equal(t, As, pc)
}
