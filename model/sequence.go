package model

import (
	"bytes"
	"encoding/json"
)

// Cell is one subdivision of a bar. The zero value is a rest.
type Cell struct {
	Note     int
	Sounding bool
}

var Rest = Cell{}

func NoteCell(n int) Cell {
	return Cell{Note: n, Sounding: true}
}

func (c Cell) IsRest() bool {
	return !c.Sounding
}

// MarshalJSON writes a rest as null and a note as its number.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsRest() {
		return []byte("null"), nil
	}
	return json.Marshal(c.Note)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Rest
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = NoteCell(n)
	return nil
}

type Bar = []Cell

// Sequence is bars of subdivisions.
type Sequence = []Bar

// Notes returns the sounding notes of a bar in order.
func Notes(bar Bar) []int {
	var res []int
	for _, c := range bar {
		if !c.IsRest() {
			res = append(res, c.Note)
		}
	}
	return res
}
