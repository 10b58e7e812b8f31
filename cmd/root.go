package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/bgmgen/constants"
	"github.com/jsphweid/bgmgen/logger"
	"github.com/jsphweid/bgmgen/random"
	"github.com/spf13/cobra"
)

var (
	seed       int
	randomSeed bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "bgmgen",
	Short: "Seeded background music generator",
	Long: `bgmgen composes short looping background tracks from a seed. The same
seed and options always give the same notes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		constants.LoadEnv()
		if !cmd.Flags().Changed("seed") {
			seed = constants.GetSeed()
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = constants.GetLogLevel()
		}
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			logger.Warn("falling back to info logging", logger.Fields{"error": err})
		}
		logger.SetLevel(level)
		if randomSeed {
			seed = int(random.NewRandom().Uint32())
			logger.Info("picked a random seed", logger.Fields{"seed": seed})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&seed, "seed", 0, "composition seed (default $BGM_SEED)")
	rootCmd.PersistentFlags().BoolVar(&randomSeed, "random-seed", false, "ignore --seed and pick one from the clock")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.DefaultLogLevel, "silent, error, warn, info or debug")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	cobra.CheckErr(enc.Encode(v))
}
