package math

import "github.com/chewxy/math32"

// Transform is a translation/rotation/scale triple. It is the unit of all
// bone-space and world-space arithmetic in the animation core.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// TransformIdentity returns the identity transform.
func TransformIdentity() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    One(),
	}
}

// Compose applies other in t's frame (t ∘ other).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(t.Scale.MulComponents(other.Position))),
		Rotation: t.Rotation.Mul(other.Rotation),
		Scale:    t.Scale.MulComponents(other.Scale),
	}
}

// Inverse returns the transform u such that t ∘ u is identity.
// Scale components must be non-zero; zero components invert to zero.
func (t Transform) Inverse() Transform {
	invScale := Vec3{
		X: safeInv(t.Scale.X),
		Y: safeInv(t.Scale.Y),
		Z: safeInv(t.Scale.Z),
	}
	invRot := t.Rotation.Inverse()
	return Transform{
		Position: invScale.MulComponents(invRot.Rotate(t.Position.Scale(-1))),
		Rotation: invRot,
		Scale:    invScale,
	}
}

func safeInv(s float32) float32 {
	if s == 0 {
		return 0
	}
	return 1 / s
}

// Apply maps a point from the transform's local space to its parent space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Position.Add(t.Rotation.Rotate(t.Scale.MulComponents(p)))
}

// Interpolate blends between a and b by weight w: componentwise lerp on
// position and scale, slerp on rotation. w=0 returns t, w=1 returns other.
func (t Transform) Interpolate(other Transform, w float32) Transform {
	if w <= 0 {
		return t
	}
	if w >= 1 {
		return other
	}
	return Transform{
		Position: t.Position.Lerp(other.Position, w),
		Rotation: t.Rotation.Slerp(other.Rotation, w),
		Scale:    t.Scale.Lerp(other.Scale, w),
	}
}

// ToMat4 converts the transform to a column-major matrix (T·R·S order).
func (t Transform) ToMat4() Mat4 {
	m := t.Rotation.ToMat4()

	// Bake scale into the rotation columns
	m[0] *= t.Scale.X
	m[1] *= t.Scale.X
	m[2] *= t.Scale.X
	m[4] *= t.Scale.Y
	m[5] *= t.Scale.Y
	m[6] *= t.Scale.Y
	m[8] *= t.Scale.Z
	m[9] *= t.Scale.Z
	m[10] *= t.Scale.Z

	m[12] = t.Position.X
	m[13] = t.Position.Y
	m[14] = t.Position.Z
	return m
}

// TransformFromMat4 decomposes a non-degenerate TRS matrix (no shear,
// scale nowhere zero) back into a Transform.
func TransformFromMat4(m Mat4) Transform {
	pos := Vec3{m[12], m[13], m[14]}

	sx := math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	// A negative determinant means one axis is mirrored; fold it into sx.
	det := m[0]*(m[5]*m[10]-m[6]*m[9]) -
		m[4]*(m[1]*m[10]-m[2]*m[9]) +
		m[8]*(m[1]*m[6]-m[2]*m[5])
	if det < 0 {
		sx = -sx
	}

	r3 := [9]float32{
		m[0] / sx, m[1] / sx, m[2] / sx,
		m[4] / sy, m[5] / sy, m[6] / sy,
		m[8] / sz, m[9] / sz, m[10] / sz,
	}

	return Transform{
		Position: pos,
		Rotation: QuatFromMat3x3(r3),
		Scale:    Vec3{sx, sy, sz},
	}
}

// Sanitize replaces non-finite components with identity values so a bad
// transform never poisons a skeleton update.
func (t Transform) Sanitize() Transform {
	if !t.Position.IsFinite() {
		t.Position = Vec3{}
	}
	if !t.Rotation.IsFinite() {
		t.Rotation = QuatIdentity()
	}
	if !t.Scale.IsFinite() {
		t.Scale = One()
	}
	return t
}
