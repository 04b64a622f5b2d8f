package water

import (
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	tmath "github.com/Faultbox/tidewater/pkg/math"
	"github.com/Faultbox/tidewater/pkg/wave"
)

// Transform converts points between a mesh's local space and world space.
// The two methods must be inverses of each other.
type Transform interface {
	LocalToWorld(p tmath.Vec3) tmath.Vec3
	WorldToLocal(p tmath.Vec3) tmath.Vec3
}

// Mesh is the renderable mesh the deformer animates.
type Mesh interface {
	BaseVertices() []tmath.Vec3
	SetVertices(v []tmath.Vec3)
	RecalculateNormals()
}

// Publisher is implemented by meshes that swap in a frame together with its
// normals. The deformer uses it instead of SetVertices and RecalculateNormals.
type Publisher interface {
	Publish(v []tmath.Vec3)
}

// affineTransform is implemented by transforms that reduce to a matrix.
type affineTransform interface {
	Matrix() tmath.Mat4
}

// minChunk is the smallest vertex range handed to a worker.
const minChunk = 256

// Deformer displaces a mesh with a wave set once per tick. It owns a copy of
// the mesh's rest-state vertices and a working buffer of the same length;
// each tick rewrites the working buffer completely and only then publishes
// it to the mesh.
type Deformer struct {
	mesh      Mesh
	xf        Transform
	toWorld   tmath.Mat4
	toLocal   tmath.Mat4
	affine    bool
	set       atomic.Pointer[wave.Set]
	base      []tmath.Vec3
	working   []tmath.Vec3
	workers   int
	timeScale float64
	ticks     uint64
	log       *zap.Logger
}

// DeformerOption configures a Deformer.
type DeformerOption func(*Deformer)

// WithWorkers splits each tick across n goroutines. n <= 1 runs serially.
func WithWorkers(n int) DeformerOption {
	return func(d *Deformer) {
		d.workers = max(n, 1)
	}
}

// WithTimeScale multiplies the simulation time passed to Tick.
func WithTimeScale(s float64) DeformerOption {
	return func(d *Deformer) {
		d.timeScale = s
	}
}

// WithLogger sets the logger used for tick diagnostics.
func WithLogger(l *zap.Logger) DeformerOption {
	return func(d *Deformer) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDeformer captures the mesh's rest-state vertices and prepares a working
// buffer. set may be nil, in which case ticks are no-ops until SetWaveSet.
// A nil xf places the mesh at the world origin.
func NewDeformer(mesh Mesh, xf Transform, set *wave.Set, opts ...DeformerOption) *Deformer {
	if xf == nil {
		xf = tmath.IdentityTransform()
	}

	base := mesh.BaseVertices()
	d := &Deformer{
		mesh:      mesh,
		xf:        xf,
		base:      append([]tmath.Vec3(nil), base...),
		working:   make([]tmath.Vec3, len(base)),
		workers:   1,
		timeScale: 1,
		log:       zap.NewNop(),
	}
	copy(d.working, d.base)
	d.set.Store(set)

	// Singular matrices (zero scale) keep using xf directly.
	if at, ok := xf.(affineTransform); ok {
		m := at.Matrix()
		if inv, ok := m.InverseOK(); ok {
			d.toWorld, d.toLocal, d.affine = m, inv, true
		}
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetWaveSet replaces the active wave set. It takes effect on the next tick
// and may be called from another goroutine.
func (d *Deformer) SetWaveSet(set *wave.Set) {
	d.set.Store(set)
	d.log.Info("wave set replaced",
		zap.Int("components", set.Len()),
		zap.Float64("gravity", set.Gravity()),
	)
}

// WaveSet returns the active wave set.
func (d *Deformer) WaveSet() *wave.Set {
	return d.set.Load()
}

// Tick displaces every vertex for simulation time t and publishes the
// result to the mesh. It returns false, without touching the mesh, when the
// wave set is missing or empty.
func (d *Deformer) Tick(t float64) bool {
	set := d.set.Load()
	if !set.Valid() {
		d.log.Debug("tick skipped: no active waves", zap.Float64("time", t))
		return false
	}

	st := t * d.timeScale
	n := len(d.base)

	if d.workers <= 1 || n < 2*minChunk {
		d.displaceRange(set, st, 0, n)
	} else {
		chunk := max((n+d.workers-1)/d.workers, minChunk)

		var g errgroup.Group
		g.SetLimit(d.workers)
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				d.displaceRange(set, st, lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}

	if p, ok := d.mesh.(Publisher); ok {
		p.Publish(d.working)
	} else {
		d.mesh.SetVertices(d.working)
		d.mesh.RecalculateNormals()
	}
	d.ticks++
	return true
}

// Step advances the deformer to the clock's current time.
func (d *Deformer) Step(c Clock) bool {
	return d.Tick(c.Now())
}

func (d *Deformer) displaceRange(set *wave.Set, t float64, lo, hi int) {
	if d.affine {
		for i := lo; i < hi; i++ {
			world := d.toWorld.TransformVec3(d.base[i])
			d.working[i] = d.toLocal.TransformVec3(wave.Displace(world, set, t))
		}
		return
	}
	for i := lo; i < hi; i++ {
		world := d.xf.LocalToWorld(d.base[i])
		d.working[i] = d.xf.WorldToLocal(wave.Displace(world, set, t))
	}
}

// Len returns the number of vertices driven by the deformer.
func (d *Deformer) Len() int {
	return len(d.base)
}

// Ticks returns how many ticks have displaced the mesh.
func (d *Deformer) Ticks() uint64 {
	return d.ticks
}

// Base returns a copy of the rest-state vertices.
func (d *Deformer) Base() []tmath.Vec3 {
	return append([]tmath.Vec3(nil), d.base...)
}

// Working returns the working buffer. It is overwritten by the next tick and
// must not be modified or read concurrently with Tick.
func (d *Deformer) Working() []tmath.Vec3 {
	return d.working
}
