package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Mod is the always-positive modulo: Mod(-1, 12) == 11.
func Mod[A constraints.Integer](x A, m A) A {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

func Min[A constraints.Ordered](a A, b A) A {
	if a > b {
		return b
	}
	return a
}

func Max[A constraints.Ordered](a A, b A) A {
	if a < b {
		return b
	}
	return a
}

func Clamp[A constraints.Ordered](v A, lo A, hi A) A {
	return Max(lo, Min(v, hi))
}

// GetKeys returns the map keys in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// HashString is the 31-multiplier string hash, wrapping at 32 bits.
func HashString(s string) int32 {
	var hash int32
	for _, c := range s {
		if c > 0xFFFF {
			// hash UTF-16 surrogate pairs as two units
			c -= 0x10000
			hash = hash<<5 - hash + int32(0xD800+(c>>10))
			hash = hash<<5 - hash + int32(0xDC00+(c&0x3FF))
			continue
		}
		hash = hash<<5 - hash + int32(c)
	}
	return hash
}
