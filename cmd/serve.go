package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/bgmgen/bgm"
	"github.com/jsphweid/bgmgen/constants"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sequence"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var servePort int

// Requests are bounded so one call cannot make the server allocate without limit.
const (
	maxBodyBytes      = 1 << 20
	maxBars           = 256
	maxSubdivisions   = 64
	maxLength         = 256
	maxAccompaniments = 16
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default $BGM_PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the generators over HTTP",
	Long:  `Serves the generators as a JSON API. Every request carries its own seed.`,
	Run: func(cmd *cobra.Command, args []string) {
		port := servePort
		if port == 0 {
			port = constants.GetPort()
		}
		serve(port)
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func readBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	reqBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	if err := json.Unmarshal(reqBody, v); err != nil {
		return fmt.Errorf("could not unmarshal request body: %w", err)
	}
	return nil
}

func checkLimit(name string, v, max int) error {
	if v > max {
		return fmt.Errorf("%w: %v must be at most %v, got %v", model.ErrInvalidArgument, name, max, v)
	}
	return nil
}

func HandleMatch(w http.ResponseWriter, r *http.Request) {
	var input model.MatchRequestBody
	if err := readBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := matchNotes(input.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, res)
}

func HandleProgression(w http.ResponseWriter, r *http.Request) {
	var input model.ProgressionRequestBody
	if err := readBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !input.Scale && input.Length <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("length must be positive, got %v", input.Length))
		return
	}
	if err := checkLimit("length", input.Length, maxLength); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prog, err := makeProgression(input.Seed, input.Length, input.Scale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, model.ProgressionResponse{Progression: prog, Labels: labels(prog)})
}

func HandleSequence(w http.ResponseWriter, r *http.Request) {
	var input model.SequenceRequestBody
	if err := readBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	for _, err := range []error{
		checkLimit("bars", input.Bars, maxBars),
		checkLimit("subdivisions", input.Subdivisions, maxSubdivisions),
	} {
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	seq, err := sequence.Generate(random.New(uint32(input.Seed)), input.Progression, sequence.Options{
		Bars:            input.Bars,
		Subdivisions:    input.Subdivisions,
		RestRatio:       input.RestRatio,
		OutOfChordRatio: input.OutOfChordRatio,
		BaseOctave:      input.BaseOctave,
		PitchOffset:     input.PitchOffset,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, model.SequenceResponse{Sequence: seq})
}

func createOptions(input model.ComposeRequestBody) bgm.CreateOptions {
	opts := bgm.DefaultCreateOptions()
	opts.BPM = constants.GetBPM()
	if input.Bars != 0 {
		opts.Bars = input.Bars
	}
	if input.Accompaniments != nil {
		opts.Accompaniments = *input.Accompaniments
	}
	if input.BaseOctave != nil {
		opts.BaseOctave = *input.BaseOctave
	}
	if input.BPM != 0 {
		opts.BPM = input.BPM
	}
	opts.OffsetRandomness = input.OffsetRandomness
	return opts
}

func checkCreateOptions(opts bgm.CreateOptions) error {
	if err := checkLimit("bars", opts.Bars, maxBars); err != nil {
		return err
	}
	return checkLimit("accompaniments", opts.Accompaniments, maxAccompaniments)
}

func HandleCompose(w http.ResponseWriter, r *http.Request) {
	var input model.ComposeRequestBody
	if err := readBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := createOptions(input)
	if err := checkCreateOptions(opts); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := bgm.Compose(random.New(uint32(input.Seed)), bgm.ComposeOptions{
		Bars:             opts.Bars,
		Accompaniments:   opts.Accompaniments,
		BaseOctave:       opts.BaseOctave,
		OffsetRandomness: opts.OffsetRandomness,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, c)
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	var input model.ComposeRequestBody
	if err := readBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := createOptions(input)
	if err := checkCreateOptions(opts); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := render(input.Seed, opts, 1, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if _, err := rec.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/match", HandleMatch).Methods("POST")
	router.HandleFunc("/progression", HandleProgression).Methods("POST")
	router.HandleFunc("/sequence", HandleSequence).Methods("POST")
	router.HandleFunc("/compose", HandleCompose).Methods("POST")
	router.HandleFunc("/render", HandleRender).Methods("POST")
	return cors.Default().Handler(router)
}

func serve(port int) {
	addr := fmt.Sprintf(":%d", port)
	logger.Info("serving", logger.Fields{"addr": addr})
	log.Fatal(http.ListenAndServe(addr, NewRouter()))
}
