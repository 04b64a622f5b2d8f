package wave

import (
	"fmt"
	"math"
	"math/rand/v2"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

// GenerateOptions controls Generate. Ranges are inclusive [min, max] pairs.
type GenerateOptions struct {
	Count             int
	Seed              uint64
	AmplitudeRange    [2]float64
	WavelengthRange   [2]float64
	SteepnessRange    [2]float64
	SpeedRange        [2]float64
	PrevailingDegrees float64 // mean travel direction
	SpreadDegrees     float64 // max deviation either side of the prevailing direction
	Gravity           float64
}

// DefaultGenerateOptions returns settings that produce a calm, plausible sea.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Count:             6,
		Seed:              42,
		AmplitudeRange:    [2]float64{0.08, 0.30},
		WavelengthRange:   [2]float64{3.0, 16.0},
		SteepnessRange:    [2]float64{0.12, 0.35},
		SpeedRange:        [2]float64{0.9, 1.2},
		PrevailingDegrees: 30,
		SpreadDegrees:     35,
		Gravity:           StandardGravity,
	}
}

// Generate builds a reproducible wave set: the same options always yield
// the same components. Directions cluster around the prevailing direction
// so the sea does not look chaotic.
func Generate(opts GenerateOptions) (*Set, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("generate %d waves: %w", opts.Count, ErrNoComponents)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	uniform := func(r [2]float64) float64 {
		return r[0] + (r[1]-r[0])*rng.Float64()
	}

	prevailing := opts.PrevailingDegrees * math.Pi / 180
	spread := opts.SpreadDegrees * math.Pi / 180

	components := make([]Component, opts.Count)
	for i := range components {
		theta := prevailing + uniform([2]float64{-spread, spread})
		sin, cos := math.Sincos(theta)

		components[i] = Component{
			Direction:  tmath.Vec2{X: cos, Y: sin},
			Amplitude:  uniform(opts.AmplitudeRange),
			Wavelength: uniform(opts.WavelengthRange),
			Steepness:  uniform(opts.SteepnessRange),
			Speed:      uniform(opts.SpeedRange),
			Phase:      uniform([2]float64{0, 2 * math.Pi}),
		}
	}

	return newSet(components, opts.Gravity, nil)
}
