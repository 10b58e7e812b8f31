package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/jsphweid/bgmgen/bgm"
	"github.com/jsphweid/bgmgen/random"
	"github.com/spf13/cobra"
)

var (
	composeFlags = bgm.DefaultCreateOptions()
	generateDump bool
)

func init() {
	addComposeFlags(generateCmd)
	generateCmd.Flags().BoolVar(&generateDump, "dump", false, "dump the Go structures instead of JSON")
	rootCmd.AddCommand(generateCmd)
}

func addComposeFlags(c *cobra.Command) {
	c.Flags().IntVar(&composeFlags.Bars, "bars", composeFlags.Bars, "melody length in bars")
	c.Flags().IntVar(&composeFlags.Accompaniments, "accompaniments", composeFlags.Accompaniments, "number of accompanying parts")
	c.Flags().IntVar(&composeFlags.BaseOctave, "octave", composeFlags.BaseOctave, "base octave of every part")
	c.Flags().IntVar(&composeFlags.OffsetRandomness, "offset-randomness", composeFlags.OffsetRandomness, "melody is shifted by up to this many semitones")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prints a composition as JSON",
	Long:  `Composes a melody, its progression and accompaniments and prints them as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := bgm.Compose(random.New(uint32(seed)), bgm.ComposeOptions{
			Bars:             composeFlags.Bars,
			Accompaniments:   composeFlags.Accompaniments,
			BaseOctave:       composeFlags.BaseOctave,
			OffsetRandomness: composeFlags.OffsetRandomness,
		})
		cobra.CheckErr(err)
		if generateDump {
			spew.Dump(c)
			return
		}
		printJSON(c)
	},
}
