package model

type MatchRequestBody struct {
	Notes []int `json:"notes"`
}

type MatchResponse struct {
	MatchResult
	Label string `json:"label"`
}

type ProgressionRequestBody struct {
	Seed   int  `json:"seed"`
	Length int  `json:"length"`
	Scale  bool `json:"scale"`
}

type ProgressionResponse struct {
	Progression Progression `json:"progression"`
	Labels      []string    `json:"labels"`
}

type SequenceRequestBody struct {
	Seed            int         `json:"seed"`
	Progression     Progression `json:"progression"`
	Bars            int         `json:"bars"`
	Subdivisions    int         `json:"subdivisions"`
	RestRatio       *float64    `json:"rest_ratio"`
	OutOfChordRatio *float64    `json:"out_of_chord_ratio"`
	BaseOctave      int         `json:"base_octave"`
	PitchOffset     int         `json:"pitch_offset"`
}

type SequenceResponse struct {
	Sequence Sequence `json:"sequence"`
}

// ComposeRequestBody is shared by /compose and /render. Zero fields take
// the defaults of a plain CreateBGM call.
type ComposeRequestBody struct {
	Seed             int     `json:"seed"`
	Bars             int     `json:"bars"`
	Accompaniments   *int    `json:"accompaniments"`
	BaseOctave       *int    `json:"base_octave"`
	OffsetRandomness int     `json:"offset_randomness"`
	BPM              float64 `json:"bpm"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
