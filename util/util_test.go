package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(11, Mod(-1, 12))
	assert.Equal(0, Mod(-12, 12))
	assert.Equal(1, Mod(25, 12))
	assert.Equal(int8(3), Mod(int8(-9), int8(12)))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1.0, Clamp(1.5, 0.0, 1.0))
	assert.Equal(0.0, Clamp(-0.2, 0.0, 1.0))
	assert.Equal(0.3, Clamp(0.3, 0.0, 1.0))
}

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetKeys(m))
}

func TestHashString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(int32(0), HashString(""))
	assert.Equal(int32(97), HashString("a"))
	// "ab" = 97*31 + 98
	assert.Equal(int32(3105), HashString("ab"))
	// wraps like a signed 32 bit accumulator
	assert.Equal(int32(2047144808), HashString("hello world, this is long"))
}
