package voice

import (
	"errors"
	"testing"

	"github.com/jsphweid/bgmgen/random"
	"github.com/jsphweid/bgmgen/sfx"
	"github.com/jsphweid/bgmgen/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTonal(t *testing.T) {
	v, err := Resolve(random.New(3), Oscillator("square"))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(Tonal, v.Kind)
	assert.Equal("square", v.Oscillator)
	assert.Nil(v.Effect)
	require.NotNil(t, v.Envelope)
	assert.GreaterOrEqual(v.Envelope.Sustain, 0.1)
	assert.Less(v.Envelope.Attack, 0.05)
	assert.Less(v.Envelope.Release, 0.5)
}

func TestResolveEffect(t *testing.T) {
	v, err := Resolve(random.New(3), Effect(sfx.Laser))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(SampledEffect, v.Kind)
	assert.Nil(v.Envelope)
	require.NotNil(t, v.Effect)
	root, err := theory.ParseNoteName(v.Root)
	require.NoError(t, err)
	assert.Equal(theory.FreqToNote(v.Effect.Frequency.Start), root)
}

func TestPickDeterministic(t *testing.T) {
	for seed := uint32(0); seed < 30; seed++ {
		a, err := Pick(random.New(seed), DefaultPool)
		require.NoError(t, err)
		b, err := Pick(random.New(seed), DefaultPool)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestPickEmptyPool(t *testing.T) {
	_, err := Pick(random.New(1), nil)
	assert.True(t, errors.Is(err, random.ErrEmptyCollection))
}

func TestKindJSON(t *testing.T) {
	data, err := SampledEffect.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"sampled_effect"`, string(data))
}
