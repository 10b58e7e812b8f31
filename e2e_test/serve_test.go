//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/bgmgen/bgm"
	"github.com/jsphweid/bgmgen/cmd"
	"github.com/jsphweid/bgmgen/midi"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sequence"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReqBody(v interface{}) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func do(handler http.HandlerFunc, path string, body interface{}) (*http.Response, []byte) {
	req := httptest.NewRequest(http.MethodPost, path, createReqBody(body))
	w := httptest.NewRecorder()
	handler(w, req)
	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func TestMatchE2E(t *testing.T) {
	resp, body := do(cmd.HandleMatch, "/match", model.MatchRequestBody{Notes: []int{60, 64, 67}})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.MatchResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(model.MatchResponse{
		MatchResult: model.MatchResult{Base: theory.C, Chord: []int{0, 4, 7}, MatchCount: 3},
		Label:       "C M",
	}, res)
}

func TestMatchEmptyE2E(t *testing.T) {
	resp, body := do(cmd.HandleMatch, "/match", model.MatchRequestBody{})

	assert.Equal(t, 400, resp.StatusCode)
	var res model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.NotEmpty(t, res.Error)
}

func TestProgressionE2E(t *testing.T) {
	resp, body := do(cmd.HandleProgression, "/progression", model.ProgressionRequestBody{Seed: 42, Scale: true})
	assert.Equal(t, 200, resp.StatusCode)

	var res model.ProgressionResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, model.ProgressionResponse{
		Progression: model.Progression{{Base: theory.E, Chord: []int{0, 2, 4, 5, 7, 9, 11}}},
		Labels:      []string{"E diatonic"},
	}, res)

	resp, _ = do(cmd.HandleProgression, "/progression", model.ProgressionRequestBody{Seed: 1})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSequenceE2E(t *testing.T) {
	prog := model.Progression{{Base: theory.C, Chord: []int{0, 4, 7}}}
	input := model.SequenceRequestBody{
		Seed:         7,
		Progression:  prog,
		Bars:         2,
		Subdivisions: 8,
		BaseOctave:   4,
	}
	resp, body := do(cmd.HandleSequence, "/sequence", input)
	require.Equal(t, 200, resp.StatusCode)

	var res model.SequenceResponse
	require.NoError(t, json.Unmarshal(body, &res))

	want, err := sequence.Generate(random.New(7), prog, sequence.Options{Bars: 2, Subdivisions: 8, BaseOctave: 4})
	require.NoError(t, err)
	assert.Equal(t, want, res.Sequence)
}

func TestSequenceRestsAreNullE2E(t *testing.T) {
	input := model.SequenceRequestBody{
		Progression:  model.Progression{{Base: theory.D, Chord: []int{0, 3, 7}}},
		Bars:         1,
		Subdivisions: 4,
		RestRatio:    sequence.Ratio(1),
	}
	resp, body := do(cmd.HandleSequence, "/sequence", input)
	require.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"sequence": [[null, null, null, null]]}`, string(body))
}

func TestSequenceInvalidE2E(t *testing.T) {
	input := model.SequenceRequestBody{
		Progression:  model.Progression{{Base: theory.C, Chord: []int{0, 4, 7}}},
		Bars:         1,
		Subdivisions: 0,
	}
	resp, body := do(cmd.HandleSequence, "/sequence", input)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, string(body), "detail")
}

func TestSequenceEmptyChordE2E(t *testing.T) {
	input := model.SequenceRequestBody{
		Progression:  model.Progression{{Base: theory.C, Chord: []int{}}},
		Bars:         1,
		Subdivisions: 1,
	}
	resp, body := do(cmd.HandleSequence, "/sequence", input)
	assert.Equal(t, 400, resp.StatusCode)

	var res model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Contains(t, res.Error, "invalid argument")
}

func TestRequestLimitsE2E(t *testing.T) {
	prog := model.Progression{{Base: theory.C, Chord: []int{0, 4, 7}}}
	many := 1000

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
		body    interface{}
	}{
		{"sequence bars", cmd.HandleSequence, "/sequence", model.SequenceRequestBody{Progression: prog, Bars: 1e9, Subdivisions: 4}},
		{"sequence subdivisions", cmd.HandleSequence, "/sequence", model.SequenceRequestBody{Progression: prog, Bars: 4, Subdivisions: 1e9}},
		{"progression length", cmd.HandleProgression, "/progression", model.ProgressionRequestBody{Length: 1e9}},
		{"compose bars", cmd.HandleCompose, "/compose", model.ComposeRequestBody{Bars: 1 << 20}},
		{"compose accompaniments", cmd.HandleCompose, "/compose", model.ComposeRequestBody{Accompaniments: &many}},
		{"render bars", cmd.HandleRender, "/render", model.ComposeRequestBody{Bars: 1 << 20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(tc.handler, tc.path, tc.body)
			assert.Equal(t, 400, resp.StatusCode)

			var res model.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &res))
			assert.Contains(t, res.Error, "must be at most")
		})
	}
}

func TestOversizedBodyE2E(t *testing.T) {
	notes := make([]int, 1<<20)
	resp, _ := do(cmd.HandleMatch, "/match", model.MatchRequestBody{Notes: notes})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestComposeE2E(t *testing.T) {
	resp, body := do(cmd.HandleCompose, "/compose", model.ComposeRequestBody{Seed: 3})
	require.Equal(t, 200, resp.StatusCode)

	opts := bgm.DefaultCreateOptions()
	want, err := bgm.Compose(random.New(3), bgm.ComposeOptions{
		Bars:           opts.Bars,
		Accompaniments: opts.Accompaniments,
		BaseOctave:     opts.BaseOctave,
	})
	require.NoError(t, err)
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(body))
}

func TestComposeTooShortE2E(t *testing.T) {
	resp, _ := do(cmd.HandleCompose, "/compose", model.ComposeRequestBody{Bars: 1})
	assert.Equal(t, 400, resp.StatusCode)

	none := 0
	resp, _ = do(cmd.HandleCompose, "/compose", model.ComposeRequestBody{Bars: 1, Accompaniments: &none})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRenderE2E(t *testing.T) {
	resp, body := do(cmd.HandleRender, "/render", model.ComposeRequestBody{Seed: 5, BPM: 90})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	s, err := midi.Read(bytes.NewReader(body))
	require.NoError(t, err)
	// tempo track plus melody and two accompaniments
	assert.Len(t, s.Tracks, 4)
}

func TestRouterE2E(t *testing.T) {
	router := cmd.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/match", createReqBody(model.MatchRequestBody{Notes: []int{57, 60, 64}}))
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/compose", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
