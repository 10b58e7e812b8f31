package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/theory"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoNotes = errors.New("no notes in midi file")

const (
	beatsPerBar   = 4
	drumChannel   = 9
	keyOffset     = 12 // note numbers start at C0, MIDI keys at C-1
	maxMidiKey    = 127
	defaultTicks  = 960
	defaultTempo  = 120
	effectChannel = drumChannel
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec, ok := recover().(string); ok {
			s, e = nil, errors.New(rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

type noteOn struct {
	ticks int64
	key   uint8
}

// ReadMelody quantizes the note-ons of a file into bars of 4 beats with
// subdivisions cells each. When several notes land in one cell the highest
// wins. The drum channel is ignored.
func ReadMelody(s *smf.SMF, subdivisions int) (model.Sequence, error) {
	if subdivisions <= 0 {
		return nil, fmt.Errorf("subdivisions must be positive, got %v", subdivisions)
	}
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}
	barTicks := int64(tf.Resolution()) * beatsPerBar

	var ons []noteOn
	var last int64
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 && channel != drumChannel {
				ons = append(ons, noteOn{absTicks, key})
				if absTicks > last {
					last = absTicks
				}
			}
		}
	}
	if len(ons) == 0 {
		return nil, ErrNoNotes
	}

	seq := make(model.Sequence, last/barTicks+1)
	for i := range seq {
		seq[i] = make(model.Bar, subdivisions)
	}
	for _, on := range ons {
		bar := on.ticks / barTicks
		slot := (on.ticks % barTicks) * int64(subdivisions) / barTicks
		note := int(on.key) - keyOffset
		cell := seq[bar][slot]
		if cell.IsRest() || note > cell.Note {
			seq[bar][slot] = model.NoteCell(note)
		}
	}
	return seq, nil
}

func keyFor(note int) (uint8, bool) {
	key := note + keyOffset
	if key < 0 || key > maxMidiKey {
		return 0, false
	}
	return uint8(key), true
}

// KeyForName converts a note name like "A4" to its MIDI key.
func KeyForName(name string) (uint8, error) {
	n, err := theory.ParseNoteName(name)
	if err != nil {
		return 0, err
	}
	key, ok := keyFor(n)
	if !ok {
		return 0, fmt.Errorf("%w: %q is outside the midi range", theory.ErrInvalidNoteName, name)
	}
	return key, nil
}
