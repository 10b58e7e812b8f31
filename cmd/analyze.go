package cmd

import (
	"fmt"

	"github.com/jsphweid/bgmgen/midi"
	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/progression"
	"github.com/jsphweid/bgmgen/random"
	"github.com/spf13/cobra"
)

var analyzeSubdivisions int

func init() {
	analyzeCmd.Flags().IntVar(&analyzeSubdivisions, "subdivisions", 16, "cells per bar when quantizing")
	rootCmd.AddCommand(analyzeCmd)
}

func analyze(path string, seed, subdivisions int) (model.Progression, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	seq, err := midi.ReadMelody(s, subdivisions)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return progression.FromSequence(random.New(uint32(seed)), seq)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Infers a chord per bar of a MIDI file",
	Long:  `Quantizes a MIDI file into bars and prints the chord that best covers each one. Empty bars get a chord from --seed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prog, err := analyze(args[0], seed, analyzeSubdivisions)
		cobra.CheckErr(err)
		for i, label := range labels(prog) {
			fmt.Printf("bar %v: %v\n", i+1, label)
		}
	},
}
