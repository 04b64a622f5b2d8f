package wave

import (
	"math"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

const (
	// MinWavelength floors the wavelength before computing the wavenumber.
	MinWavelength = 1e-4

	// DirectionEpsilon is the squared magnitude below which a direction is
	// treated as degenerate and replaced by DefaultDirection.
	DirectionEpsilon = 1e-8
)

// DefaultDirection is used for components whose direction is degenerate.
var DefaultDirection = tmath.Vec2{X: 1, Y: 0}

// Wavenumber returns k = 2π / wavelength with the wavelength floored at MinWavelength.
func Wavenumber(wavelength float64) float64 {
	if !(wavelength >= MinWavelength) {
		wavelength = MinWavelength
	}
	return 2 * math.Pi / wavelength
}

// UnitDirection normalizes d, falling back to DefaultDirection when d is degenerate.
func UnitDirection(d tmath.Vec2) tmath.Vec2 {
	return d.NormalizeOr(DefaultDirection, DirectionEpsilon)
}

// AngularFrequency returns ω for wavenumber k. An explicit phase speed wins;
// otherwise the deep-water dispersion relation ω = sqrt(g·k) applies.
func AngularFrequency(k, speed, gravity float64) float64 {
	if speed > 0 {
		return k * speed
	}
	return math.Sqrt(gravity * k)
}

// ClampSteepness limits q to [0, 1].
func ClampSteepness(q float64) float64 {
	switch {
	case q > 1:
		return 1
	case q > 0:
		return q
	default:
		return 0
	}
}

// Phase returns θ for component c at world position (x, z) and time t.
func Phase(c Component, gravity, x, z, t float64) float64 {
	k := Wavenumber(c.Wavelength)
	d := UnitDirection(c.Direction)
	omega := AngularFrequency(k, c.Speed, gravity)
	return k*(d.X*x+d.Y*z) + omega*t + c.Phase
}

// Offset returns the displacement contributed by a single component at
// world position (x, z) and time t.
func Offset(c Component, gravity, x, z, t float64) tmath.Vec3 {
	k := Wavenumber(c.Wavelength)
	d := UnitDirection(c.Direction)
	omega := AngularFrequency(k, c.Speed, gravity)
	theta := k*(d.X*x+d.Y*z) + omega*t + c.Phase

	sin, cos := math.Sincos(theta)
	qa := ClampSteepness(c.Steepness) * c.Amplitude

	return tmath.Vec3{
		X: qa * d.X * cos,
		Y: c.Amplitude * sin,
		Z: qa * d.Y * cos,
	}
}

// Displace returns the world position p displaced by every component of set
// at time t. A nil or empty set leaves p unchanged.
//
// Displace is a pure function: it holds no state and may be evaluated for
// many vertices concurrently against the same set.
func Displace(p tmath.Vec3, set *Set, t float64) tmath.Vec3 {
	if !set.Valid() {
		return p
	}

	var dx, dy, dz float64
	g := set.gravity
	for i := range set.components {
		o := Offset(set.components[i], g, p.X, p.Z, t)
		dx += o.X
		dy += o.Y
		dz += o.Z
	}

	return tmath.Vec3{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Height returns only the vertical displacement of the surface at world
// position (x, z) and time t.
func Height(set *Set, x, z, t float64) float64 {
	if !set.Valid() {
		return 0
	}

	var y float64
	for i := range set.components {
		y += set.components[i].Amplitude * math.Sin(Phase(set.components[i], set.gravity, x, z, t))
	}
	return y
}
