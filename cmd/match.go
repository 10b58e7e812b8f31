package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/bgmgen/chord"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(matchCmd)
}

// parseNote accepts a note number or a name like "C#4".
func parseNote(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	return theory.ParseNoteName(s)
}

func matchNotes(notes []int) (model.MatchResponse, error) {
	res, err := chord.Match(chord.PitchClasses(notes))
	if err != nil {
		return model.MatchResponse{}, err
	}
	return model.MatchResponse{MatchResult: res, Label: chord.Label(res.Spec())}, nil
}

var matchCmd = &cobra.Command{
	Use:   "match <note>...",
	Short: "Finds the chord that best covers some notes",
	Long:  `Finds the chord that best covers some notes. Notes are numbers (C0 = 0) or names like E4.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		notes := make([]int, len(args))
		for i, arg := range args {
			n, err := parseNote(arg)
			cobra.CheckErr(err)
			notes[i] = n
		}
		res, err := matchNotes(notes)
		cobra.CheckErr(err)
		fmt.Printf("%v (%v of %v notes)\n", res.Label, res.MatchCount, len(chord.PitchClasses(notes)))
	},
}
