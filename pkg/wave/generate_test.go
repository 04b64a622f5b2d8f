package wave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultGenerateOptions()

	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Components(), b.Components())

	opts.Seed = 7
	c, err := Generate(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Components(), c.Components())
}

func TestGenerateRanges(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Count = 64

	set, err := Generate(opts)
	require.NoError(t, err)
	require.Equal(t, 64, set.Len())
	assert.Equal(t, StandardGravity, set.Gravity())

	prevailing := opts.PrevailingDegrees * math.Pi / 180
	spread := opts.SpreadDegrees * math.Pi / 180

	for i, c := range set.Components() {
		assert.InDelta(t, 1.0, c.Direction.Length(), 1e-12, "wave %d direction not unit", i)

		angle := math.Atan2(c.Direction.Y, c.Direction.X)
		assert.LessOrEqual(t, math.Abs(angle-prevailing), spread+1e-12, "wave %d outside spread", i)

		assert.True(t, inRange(c.Amplitude, opts.AmplitudeRange), "amplitude %v", c.Amplitude)
		assert.True(t, inRange(c.Wavelength, opts.WavelengthRange), "wavelength %v", c.Wavelength)
		assert.True(t, inRange(c.Steepness, opts.SteepnessRange), "steepness %v", c.Steepness)
		assert.True(t, inRange(c.Speed, opts.SpeedRange), "speed %v", c.Speed)
		assert.True(t, c.Phase >= 0 && c.Phase < 2*math.Pi, "phase %v", c.Phase)
	}
}

func TestGenerateNoWaves(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Count = 0

	_, err := Generate(opts)
	assert.ErrorIs(t, err, ErrNoComponents)
}

func inRange(v float64, r [2]float64) bool {
	return v >= r[0] && v <= r[1]
}
