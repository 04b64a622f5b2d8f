// Package water provides the animated water surface: grid geometry, the
// per-tick wave deformer and the clocks that drive it.
package water

import (
	"sync"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min tmath.Vec3
	Max tmath.Vec3
}

// Surface is a regular water grid in the XZ plane. It keeps its rest-state
// vertices separately from the published, displaced ones and is safe for a
// renderer to read while the deformer publishes new frames.
type Surface struct {
	mu       sync.RWMutex
	base     []tmath.Vec3
	vertices []tmath.Vec3
	normals  []tmath.Vec3
	indices  []uint32
	segX     int
	segZ     int
	level    float64
	frame    uint64
}

// BuildGrid creates a flat water grid of width x depth world units centered
// on the origin at height level, split into segX x segZ cells.
// Segment counts below 1 are raised to 1.
func BuildGrid(width, depth float64, segX, segZ int, level float64) *Surface {
	segX = max(segX, 1)
	segZ = max(segZ, 1)

	cols := segX + 1
	rows := segZ + 1
	base := make([]tmath.Vec3, 0, cols*rows)

	minX := -width / 2
	minZ := -depth / 2
	for z := range rows {
		for x := range cols {
			base = append(base, tmath.Vec3{
				X: minX + width*float64(x)/float64(segX),
				Y: level,
				Z: minZ + depth*float64(z)/float64(segZ),
			})
		}
	}

	// Two triangles per cell, wound so a flat grid faces +Y.
	indices := make([]uint32, 0, segX*segZ*6)
	for z := range segZ {
		for x := range segX {
			a := uint32(z*cols + x)
			b := a + uint32(cols)
			c := a + 1
			d := b + 1
			indices = append(indices, a, b, c, c, b, d)
		}
	}

	s := &Surface{
		base:     base,
		vertices: append([]tmath.Vec3(nil), base...),
		normals:  make([]tmath.Vec3, len(base)),
		indices:  indices,
		segX:     segX,
		segZ:     segZ,
		level:    level,
	}
	s.recalculateNormals()
	return s
}

// BuildGridWithPadding creates a water grid extended by padding on every side.
func BuildGridWithPadding(width, depth float64, segX, segZ int, level, padding float64) *Surface {
	return BuildGrid(width+2*padding, depth+2*padding, segX, segZ, level)
}

// BaseVertices returns a copy of the rest-state vertices.
func (s *Surface) BaseVertices() []tmath.Vec3 {
	return append([]tmath.Vec3(nil), s.base...)
}

// SetVertices publishes a new frame. The slice is copied; extra or missing
// entries are ignored so the vertex count never changes.
func (s *Surface) SetVertices(v []tmath.Vec3) {
	s.mu.Lock()
	copy(s.vertices, v)
	s.frame++
	s.mu.Unlock()
}

// Publish replaces the frame and rebuilds its normals under one lock, so
// readers never see vertices and normals from different frames.
func (s *Surface) Publish(v []tmath.Vec3) {
	s.mu.Lock()
	copy(s.vertices, v)
	s.recalculateNormals()
	s.frame++
	s.mu.Unlock()
}

// RecalculateNormals rebuilds smooth vertex normals from the current frame.
func (s *Surface) RecalculateNormals() {
	s.mu.Lock()
	s.recalculateNormals()
	s.mu.Unlock()
}

// recalculateNormals accumulates area-weighted face normals per vertex.
// Callers must hold mu.
func (s *Surface) recalculateNormals() {
	for i := range s.normals {
		s.normals[i] = tmath.Vec3{}
	}

	for i := 0; i+2 < len(s.indices); i += 3 {
		ia, ib, ic := s.indices[i], s.indices[i+1], s.indices[i+2]
		a, b, c := s.vertices[ia], s.vertices[ib], s.vertices[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		s.normals[ia] = s.normals[ia].Add(n)
		s.normals[ib] = s.normals[ib].Add(n)
		s.normals[ic] = s.normals[ic].Add(n)
	}

	for i, n := range s.normals {
		s.normals[i] = normalize(n)
	}
}

// Len returns the number of vertices.
func (s *Surface) Len() int {
	return len(s.base)
}

// Segments returns the cell counts along X and Z.
func (s *Surface) Segments() (int, int) {
	return s.segX, s.segZ
}

// Level returns the rest-state height of the grid.
func (s *Surface) Level() float64 {
	return s.level
}

// Frame returns how many frames have been published.
func (s *Surface) Frame() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Indices returns the triangle index list.
func (s *Surface) Indices() []uint32 {
	return s.indices
}

// Vertices returns a copy of the latest published vertices.
func (s *Surface) Vertices() []tmath.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tmath.Vec3(nil), s.vertices...)
}

// Normals returns a copy of the latest vertex normals.
func (s *Surface) Normals() []tmath.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tmath.Vec3(nil), s.normals...)
}

// Bounds returns the bounding box of the latest published frame.
func (s *Surface) Bounds() Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := Bounds{
		Min: tmath.Vec3{X: 1e300, Y: 1e300, Z: 1e300},
		Max: tmath.Vec3{X: -1e300, Y: -1e300, Z: -1e300},
	}
	for _, v := range s.vertices {
		b.Min = tmath.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = tmath.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}

// Interleaved returns the latest frame as a flat x,y,z,nx,ny,nz array ready for GPU upload.
func (s *Surface) Interleaved() []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]float32, 0, len(s.vertices)*6)
	for i, v := range s.vertices {
		p := v.Float32()
		n := s.normals[i].Float32()
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

func normalize(v tmath.Vec3) tmath.Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return tmath.Vec3{X: 0, Y: 1, Z: 0}
	}
	return v.Scale(1 / l)
}
