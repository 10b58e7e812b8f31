package sfx

import (
	"testing"

	"github.com/jsphweid/bgmgen/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var all = []Preset{Coin, Laser, Explosion, Powerup, Hit, Jump, Select, Lucky}

func TestPresetsDeterministic(t *testing.T) {
	for _, p := range all {
		t.Run(p.String(), func(t *testing.T) {
			a, err := p.Generate(random.New(11))
			require.NoError(t, err)
			b, err := p.Generate(random.New(11))
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.Greater(t, a.Frequency.Start, 0.0)
			assert.NotEmpty(t, a.Generator)
		})
	}
}

func TestPresetNames(t *testing.T) {
	for _, p := range all {
		parsed, err := ParsePreset(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePreset("boing")
	assert.Error(t, err)
	assert.Equal(t, "Preset(42)", Preset(42).String())
}

func TestUnknownPreset(t *testing.T) {
	_, err := Preset(42).Generate(random.New(1))
	assert.Error(t, err)
}
