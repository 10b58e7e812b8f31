package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/bgmgen/bgm"
	"github.com/jsphweid/bgmgen/constants"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/midi"
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/spf13/cobra"
)

const trackName = "main"

var (
	renderOut     string
	renderLoops   int
	renderEffects []string
)

func init() {
	addComposeFlags(renderCmd)
	renderCmd.Flags().Float64Var(&composeFlags.BPM, "bpm", 0, "tempo (default $BGM_BPM or 120)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default <out dir>/bgm-<seed>.mid)")
	renderCmd.Flags().IntVar(&renderLoops, "loops", 1, "how many times the track repeats")
	renderCmd.Flags().StringSliceVar(&renderEffects, "se", nil, "sound effects to hit at the start, e.g. coin,jump")
	rootCmd.AddCommand(renderCmd)
}

// render composes a track on a fresh recorder and plays it loops times
// back to back.
func render(seed int, opts bgm.CreateOptions, loops int, effects []sfx.Preset) (*midi.Recorder, error) {
	if loops < 1 {
		return nil, fmt.Errorf("loops must be at least 1, got %v", loops)
	}
	rec := midi.NewRecorder(opts.BPM)
	o := bgm.New(rec, seed)
	if _, err := o.CreateBGM(trackName, opts); err != nil {
		return nil, err
	}
	for _, p := range effects {
		if err := o.PlaySE(p, bgm.PlayOptions{}); err != nil {
			return nil, err
		}
	}
	cycle := float64(opts.Bars) * 4 * 60 / opts.BPM
	for i := 0; i < loops; i++ {
		if err := o.PlayBGM(trackName); err != nil {
			return nil, err
		}
		rec.Advance(cycle)
	}
	return rec, nil
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Writes a composition to a MIDI file",
	Long:  `Composes a track and writes it as a Standard MIDI File, one track per part.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := composeFlags
		if opts.BPM == 0 {
			opts.BPM = constants.GetBPM()
		}
		var effects []sfx.Preset
		for _, name := range renderEffects {
			p, err := sfx.ParsePreset(name)
			cobra.CheckErr(err)
			effects = append(effects, p)
		}

		rec, err := render(seed, opts, renderLoops, effects)
		cobra.CheckErr(err)

		path := renderOut
		if path == "" {
			path = filepath.Join(constants.GetOutDir(), fmt.Sprintf("bgm-%d.mid", seed))
		}
		cobra.CheckErr(os.MkdirAll(filepath.Dir(path), 0755))
		f, err := os.Create(path)
		cobra.CheckErr(err)
		defer f.Close()

		n, err := rec.WriteTo(f)
		cobra.CheckErr(err)
		logger.Info("wrote midi", logger.Fields{"path": path, "bytes": n, "seed": seed})
	},
}
