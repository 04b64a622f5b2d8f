// Package wave models a set of Gerstner wave components and evaluates the
// displacement they produce on a water surface.
package wave

import (
	"errors"
	"fmt"
	"math"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

// StandardGravity is used when a configuration supplies no usable gravity.
const StandardGravity = 9.81

var (
	// ErrNoComponents is returned when a wave set would contain no components.
	ErrNoComponents = errors.New("wave set has no components")

	// ErrInvalidComponent is wrapped by ComponentError under the Strict policy.
	ErrInvalidComponent = errors.New("invalid wave component")
)

// Component is a single oscillatory contributor to the surface.
type Component struct {
	Direction  tmath.Vec2 // travel direction on the XZ plane (Y holds world Z)
	Amplitude  float64    // wave height contribution
	Wavelength float64    // crest-to-crest distance
	Phase      float64    // phase offset in radians
	Speed      float64    // phase speed; <= 0 derives it from gravity
	Steepness  float64    // 0 = pure heave, 1 = sharp trochoidal crests
}

// Record is the raw configuration form of a Component.
type Record struct {
	DirX       float64 `json:"dir_x" yaml:"dir_x"`
	DirZ       float64 `json:"dir_z" yaml:"dir_z"`
	Amplitude  float64 `json:"amplitude" yaml:"amplitude"`
	Wavelength float64 `json:"wavelength" yaml:"wavelength"`
	Phase      float64 `json:"phase" yaml:"phase"`
	Speed      float64 `json:"speed" yaml:"speed"`
	Steepness  float64 `json:"steepness" yaml:"steepness"`
}

// Component converts the record into its typed form.
func (r Record) Component() Component {
	return Component{
		Direction:  tmath.Vec2{X: r.DirX, Y: r.DirZ},
		Amplitude:  r.Amplitude,
		Wavelength: r.Wavelength,
		Phase:      r.Phase,
		Speed:      r.Speed,
		Steepness:  r.Steepness,
	}
}

// Record converts the component back into its raw form.
func (c Component) Record() Record {
	return Record{
		DirX:       c.Direction.X,
		DirZ:       c.Direction.Y,
		Amplitude:  c.Amplitude,
		Wavelength: c.Wavelength,
		Phase:      c.Phase,
		Speed:      c.Speed,
		Steepness:  c.Steepness,
	}
}

// Policy controls how NewSet treats malformed components.
type Policy int

const (
	// Lenient keeps malformed components; the engine neutralizes them at
	// evaluation time with floors and fallbacks.
	Lenient Policy = iota
	// Strict rejects the whole set when any component is malformed.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ComponentError describes a component rejected under the Strict policy.
type ComponentError struct {
	Index int
	Field string
	Value float64
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("wave %d: invalid %s %g", e.Index, e.Field, e.Value)
}

func (e *ComponentError) Unwrap() error {
	return ErrInvalidComponent
}

// Option configures NewSet.
type Option func(*options)

type options struct {
	policy Policy
}

// WithPolicy selects the validation policy. The default is Lenient.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// Set is an immutable collection of wave components plus gravity.
// A *Set is safe to share between goroutines.
type Set struct {
	gravity    float64
	components []Component
}

// NewSet builds a Set from raw records. It returns ErrNoComponents when
// records is empty. A gravity <= 0 is replaced with StandardGravity.
func NewSet(records []Record, gravity float64, opts ...Option) (*Set, error) {
	components := make([]Component, len(records))
	for i, r := range records {
		components[i] = r.Component()
	}
	return newSet(components, gravity, opts)
}

// NewSetFromComponents builds a Set from typed components with the same
// rules as NewSet. The slice is copied.
func NewSetFromComponents(components []Component, gravity float64, opts ...Option) (*Set, error) {
	return newSet(append([]Component(nil), components...), gravity, opts)
}

func newSet(components []Component, gravity float64, opts []Option) (*Set, error) {
	o := options{policy: Lenient}
	for _, opt := range opts {
		opt(&o)
	}

	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	if o.policy == Strict {
		for i, c := range components {
			if err := checkComponent(i, c); err != nil {
				return nil, err
			}
		}
	}

	return &Set{
		gravity:    NormalizeGravity(gravity),
		components: components,
	}, nil
}

// NormalizeGravity returns g, or StandardGravity when g is not a positive finite number.
func NormalizeGravity(g float64) float64 {
	if !(g > 0) || math.IsInf(g, 0) {
		return StandardGravity
	}
	return g
}

func checkComponent(i int, c Component) error {
	switch {
	case !(c.Wavelength > 0) || math.IsInf(c.Wavelength, 0):
		return &ComponentError{Index: i, Field: "wavelength", Value: c.Wavelength}
	case !(c.Direction.LengthSq() >= DirectionEpsilon):
		return &ComponentError{Index: i, Field: "direction", Value: c.Direction.Length()}
	case !(c.Amplitude >= 0) || math.IsInf(c.Amplitude, 0):
		return &ComponentError{Index: i, Field: "amplitude", Value: c.Amplitude}
	case !(c.Steepness >= 0 && c.Steepness <= 1):
		return &ComponentError{Index: i, Field: "steepness", Value: c.Steepness}
	case math.IsNaN(c.Phase) || math.IsInf(c.Phase, 0):
		return &ComponentError{Index: i, Field: "phase", Value: c.Phase}
	case math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0):
		return &ComponentError{Index: i, Field: "speed", Value: c.Speed}
	}
	return nil
}

// Gravity returns the gravity used by the dispersion relation.
func (s *Set) Gravity() float64 {
	if s == nil {
		return StandardGravity
	}
	return s.gravity
}

// Len returns the number of components.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.components)
}

// Valid reports whether the set has at least one component.
// A nil or empty set is inert and displaces nothing.
func (s *Set) Valid() bool {
	return s.Len() > 0
}

// Component returns the i-th component, or the zero Component when i is
// out of range.
func (s *Set) Component(i int) Component {
	if s == nil || i < 0 || i >= len(s.components) {
		return Component{}
	}
	return s.components[i]
}

// Components returns a copy of the components in their original order.
func (s *Set) Components() []Component {
	if s == nil {
		return nil
	}
	return append([]Component(nil), s.components...)
}

// Records returns the components in raw form.
func (s *Set) Records() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.components))
	for i, c := range s.components {
		out[i] = c.Record()
	}
	return out
}

// MaxHeight returns the largest possible vertical displacement (sum of amplitudes).
func (s *Set) MaxHeight() float64 {
	var sum float64
	for i := 0; i < s.Len(); i++ {
		sum += math.Abs(s.components[i].Amplitude)
	}
	return sum
}
