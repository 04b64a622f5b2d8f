package wave

import (
	"errors"
	"math"
	"slices"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

// Fit errors.
var (
	ErrShortSeries   = errors.New("height series needs at least two samples")
	ErrBadTimeStep   = errors.New("height series times must be strictly ascending")
	ErrNoOscillation = errors.New("height series has no dominant frequency")
)

// FitOptions supplies the parameters a single height series cannot measure.
type FitOptions struct {
	// Position is the world (x, z) where the series was recorded.
	Position tmath.Vec2
	// Direction of travel; degenerate values fall back to DefaultDirection.
	Direction tmath.Vec2
	// Wavelength in world units. Zero derives it from deep-water dispersion.
	Wavelength float64
	Steepness  float64
	Gravity    float64
}

// DefaultFitOptions returns options for a wave travelling along +X, recorded
// at the origin, with its wavelength taken from dispersion.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Direction: DefaultDirection,
		Steepness: 0.25,
		Gravity:   StandardGravity,
	}
}

// FitResult is a component fitted to a height series.
type FitResult struct {
	Component Component
	Frequency float64 // Hz
	MeanLevel float64 // rest height the series oscillates around
}

// Fit estimates one wave component from surface heights sampled at a fixed
// horizontal position. Amplitude is half the peak-to-peak range and the
// angular frequency and phase come from the strongest DFT bin. times must be
// ascending.
func Fit(times, heights []float64, opts FitOptions) (FitResult, error) {
	if len(times) != len(heights) || len(times) < 2 {
		return FitResult{}, ErrShortSeries
	}
	dt, err := medianStep(times)
	if err != nil {
		return FitResult{}, err
	}

	mean := 0.0
	for _, h := range heights {
		mean += h
	}
	mean /= float64(len(heights))

	bin, re, im := peakBin(heights, mean)
	if bin == 0 {
		return FitResult{}, ErrNoOscillation
	}

	n := float64(len(heights))
	freq := float64(bin) / (n * dt)
	omega := 2 * math.Pi * freq
	gravity := NormalizeGravity(opts.Gravity)

	c := Component{
		Direction: UnitDirection(opts.Direction),
		Amplitude: EstimateAmplitude(heights),
		Steepness: ClampSteepness(opts.Steepness),
	}

	// An explicit wavelength keeps the measured frequency through Speed;
	// otherwise the wavelength follows from omega^2 = g*k.
	var k float64
	if opts.Wavelength > 0 {
		c.Wavelength = opts.Wavelength
		k = Wavenumber(c.Wavelength)
		c.Speed = omega / k
	} else {
		k = omega * omega / gravity
		c.Wavelength = 2 * math.Pi / k
	}

	// A sine of phase phi has its DFT peak at angle phi - pi/2, measured
	// from the first sample.
	phi := math.Atan2(im, re) + math.Pi/2 - omega*times[0]
	phi -= k * (c.Direction.X*opts.Position.X + c.Direction.Y*opts.Position.Y)
	c.Phase = wrapAngle(phi)

	return FitResult{Component: c, Frequency: freq, MeanLevel: mean}, nil
}

// DominantFrequency returns the frequency in Hz of the strongest non-zero
// DFT bin of a uniformly sampled series, or 0 when the series is flat.
func DominantFrequency(times, heights []float64) (float64, error) {
	if len(times) != len(heights) || len(times) < 2 {
		return 0, ErrShortSeries
	}
	dt, err := medianStep(times)
	if err != nil {
		return 0, err
	}

	mean := 0.0
	for _, h := range heights {
		mean += h
	}
	mean /= float64(len(heights))

	bin, _, _ := peakBin(heights, mean)
	return float64(bin) / (float64(len(heights)) * dt), nil
}

// EstimateAmplitude returns half the peak-to-peak range of heights.
func EstimateAmplitude(heights []float64) float64 {
	if len(heights) == 0 {
		return 0
	}
	lo, hi := heights[0], heights[0]
	for _, h := range heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return (hi - lo) / 2
}

// Median returns the middle value of xs, averaging the two middle values
// for even lengths. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func medianStep(times []float64) (float64, error) {
	steps := make([]float64, len(times)-1)
	for i := range steps {
		steps[i] = times[i+1] - times[i]
		if !(steps[i] > 0) {
			return 0, ErrBadTimeStep
		}
	}
	return Median(steps), nil
}

// peakBin returns the index and value of the largest-magnitude bin among
// 1..n/2 of the DFT of heights minus mean. Index 0 means no energy.
func peakBin(heights []float64, mean float64) (int, float64, float64) {
	if EstimateAmplitude(heights) == 0 {
		return 0, 0, 0
	}

	n := len(heights)
	best, bestRe, bestIm, bestMag := 0, 0.0, 0.0, 0.0

	for k := 1; k <= n/2; k++ {
		var re, im float64
		for j, h := range heights {
			a := 2 * math.Pi * float64(k*j%n) / float64(n)
			y := h - mean
			re += y * math.Cos(a)
			im -= y * math.Sin(a)
		}
		if mag := re*re + im*im; mag > bestMag {
			best, bestRe, bestIm, bestMag = k, re, im, mag
		}
	}
	return best, bestRe, bestIm
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
