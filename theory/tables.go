package theory

// Shape is a set of semitone offsets from a root. Offsets may be negative
// (an inversion below the root) and are only reduced mod 12 for comparison.
type Shape = []int

// Chords is the table of chord shapes. Order matters for tie-breaking.
var Chords = []Shape{
	{0, 4, 7}, // M
	{0, 3, 7}, // m

	{0, 4, 7, 10},  // 7
	{0, 4, 7, -2},  // 7
	{0, 4, -5, -2}, // 7

	{0, 4, 7, 11},  // M7
	{0, 4, 7, -1},  // M7
	{0, 4, -5, -1}, // M7

	{0, 3, 7, 10},  // m7
	{0, 3, 7, -2},  // m7
	{0, 3, -5, -2}, // m7
}

var chordQualities = []string{"M", "m", "7", "7", "7", "M7", "M7", "M7", "m7", "m7", "m7"}

// Scales is the table of scale shapes.
var Scales = []Shape{
	{0, 2, 4, 5, 7, 9, 11}, // diatonic
	{0, 2, 3, 5, 7, 9, 11}, // melodic minor
	{1, 3, 6, 8, 10},       // pentatonic (black keys)
	{0, 4, 5, 7, 11},       // yonanuki
}

var scaleNames = []string{"diatonic", "melodic-minor", "pentatonic", "yonanuki"}

// Normalize reduces every offset mod 12 and drops duplicates, keeping order.
func Normalize(shape Shape) []PitchClass {
	seen := make(map[PitchClass]bool, len(shape))
	var res []PitchClass
	for _, o := range shape {
		pc := Mod12(o)
		if !seen[pc] {
			seen[pc] = true
			res = append(res, pc)
		}
	}
	return res
}

// ShapeName names a chord or scale table entry, or "?" for anything else.
func ShapeName(shape Shape) string {
	for i, c := range Chords {
		if sameShape(c, shape) {
			return chordQualities[i]
		}
	}
	for i, s := range Scales {
		if sameShape(s, shape) {
			return scaleNames[i]
		}
	}
	return "?"
}

func sameShape(a, b Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
