package math

// Transform places a mesh in the world: scale, then rotate, then translate.
// It converts points between the mesh's local space and world space.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform returns a transform whose local space equals world space.
func IdentityTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3{1, 1, 1},
	}
}

// Matrix returns the local-to-world matrix (T * R * S).
func (t Transform) Matrix() Mat4 {
	return Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(t.Rotation.ToMat4()).
		Mul(Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// LocalToWorld converts a point from local space to world space.
func (t Transform) LocalToWorld(p Vec3) Vec3 {
	return t.Rotation.Normalize().Rotate(p.Mul(t.Scale)).Add(t.Position)
}

// WorldToLocal converts a point from world space to local space.
// Axes with zero scale map to zero.
func (t Transform) WorldToLocal(p Vec3) Vec3 {
	r := t.Rotation.Normalize().Conjugate().Rotate(p.Sub(t.Position))
	return Vec3{safeDiv(r.X, t.Scale.X), safeDiv(r.Y, t.Scale.Y), safeDiv(r.Z, t.Scale.Z)}
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
