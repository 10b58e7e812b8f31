package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/bgmgen/model"
	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/theory"
)

// CreateChordKey renders notes as a sorted, dash separated key, e.g. "0-4-7".
func CreateChordKey(notes []int) string {
	sorted := append([]int(nil), notes...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

// PitchClasses collapses notes to their distinct pitch classes in ascending order.
func PitchClasses(notes []int) []theory.PitchClass {
	seen := make(map[theory.PitchClass]bool)
	var res []theory.PitchClass
	for _, n := range notes {
		pc := theory.Mod12(n)
		if !seen[pc] {
			seen[pc] = true
			res = append(res, pc)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

// Match finds the chord shape and root that cover the most of notes.
// Every note is tried as the root in the given order; on equal counts the
// earlier root and the earlier chord table entry win.
func Match(notes []theory.PitchClass) (model.MatchResult, error) {
	if len(notes) == 0 {
		return model.MatchResult{}, random.ErrEmptyCollection
	}

	best := model.MatchResult{MatchCount: -1}
	for _, root := range notes {
		offsets := make(map[theory.PitchClass]bool, len(notes))
		for _, n := range notes {
			offsets[theory.Mod12(int(n)-int(root))] = true
		}

		bestChord, bestCount := 0, -1
		for i, shape := range theory.Chords {
			count := Overlap(shape, offsets)
			if count > bestCount {
				bestChord, bestCount = i, count
			}
		}

		if bestCount > best.MatchCount {
			best = model.MatchResult{
				Base:       theory.Mod12(int(root)),
				Chord:      append([]int(nil), theory.Chords[bestChord]...),
				MatchCount: bestCount,
			}
		}
	}
	return best, nil
}

// Overlap counts the offsets of shape, reduced mod 12, present in set.
func Overlap(shape theory.Shape, set map[theory.PitchClass]bool) int {
	count := 0
	for _, pc := range theory.Normalize(shape) {
		if set[pc] {
			count++
		}
	}
	return count
}

// Label renders a chord like "C M7".
func Label(c model.ChordSpec) string {
	return fmt.Sprintf("%v %v", c.Base, theory.ShapeName(c.Chord))
}
