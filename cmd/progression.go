package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/bgmgen/chord"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/progression"
	"github.com/jsphweid/bgmgen/random"
	"github.com/spf13/cobra"
)

var (
	progressionLength int
	progressionScale  bool
	progressionJSON   bool
)

func init() {
	progressionCmd.Flags().IntVar(&progressionLength, "length", 4, "number of chords")
	progressionCmd.Flags().BoolVar(&progressionScale, "scale", false, "draw a single scale instead")
	progressionCmd.Flags().BoolVar(&progressionJSON, "json", false, "print JSON")
	rootCmd.AddCommand(progressionCmd)
}

func makeProgression(seed, length int, scale bool) (model.Progression, error) {
	r := random.New(uint32(seed))
	if scale {
		return progression.RandomScale(r)
	}
	return progression.Random(r, length)
}

func labels(prog model.Progression) []string {
	res := make([]string, len(prog))
	for i, spec := range prog {
		res[i] = chord.Label(spec)
	}
	return res
}

var progressionCmd = &cobra.Command{
	Use:   "progression",
	Short: "Draws a random chord progression",
	Long:  `Draws a random chord progression, or a scale with --scale.`,
	Run: func(cmd *cobra.Command, args []string) {
		prog, err := makeProgression(seed, progressionLength, progressionScale)
		cobra.CheckErr(err)
		if progressionJSON {
			printJSON(model.ProgressionResponse{Progression: prog, Labels: labels(prog)})
			return
		}
		fmt.Println(strings.Join(labels(prog), " | "))
	},
}
