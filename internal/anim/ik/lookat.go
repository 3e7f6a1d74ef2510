package ik

import (
	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// LookAt aims a single bone's forward axis at a world-space target. Weight
// blends between the bone's current rotation (0) and the full aim (1), and
// an optional up vector removes roll around the aim direction.
type LookAt struct {
	Forward math.Vec3
	Weight  float32

	Up    math.Vec3
	HasUp bool
}

// NewLookAt creates a full-weight constraint aiming the +Z axis.
func NewLookAt() *LookAt {
	return &LookAt{
		Forward: math.Vec3{Z: 1},
		Weight:  1,
	}
}

// SetUp configures the up vector used to cancel roll.
func (k *LookAt) SetUp(up math.Vec3) {
	k.Up = up
	k.HasUp = true
}

// Solve rotates the named bone toward the target. Returns false when the
// bone is unknown; a target on the bone itself leaves the rotation alone.
func (k *LookAt) Solve(boneName string, target math.Vec3, s *anim.Skeleton) bool {
	b := s.Bone(boneName)
	if b == nil {
		return false
	}

	s.Update()
	b = s.BoneAt(b.Index)

	toTarget := target.Sub(b.World.Position)
	if toTarget.Length() < epsilon {
		return true
	}
	desired := toTarget.Normalize()

	forward := k.Forward
	if forward.Length() < epsilon {
		forward = math.Vec3{Z: 1}
	}
	worldForward := b.World.Rotation.Rotate(forward.Normalize())

	aimed := math.QuatBetween(worldForward, desired).Mul(b.World.Rotation)

	if k.HasUp && k.Up.Length() > epsilon {
		// Twist around the aim direction so the rotated up axis leans toward
		// the configured up.
		curUp := aimed.Rotate(math.Vec3{Y: 1})
		flatCur := curUp.Sub(desired.Scale(curUp.Dot(desired)))
		flatRef := k.Up.Sub(desired.Scale(k.Up.Dot(desired)))
		if flatCur.Length() > epsilon && flatRef.Length() > epsilon {
			aimed = math.QuatBetween(flatCur, flatRef).Mul(aimed)
		}
	}

	w := clamp(k.Weight, 0, 1)
	final := b.World.Rotation.Slerp(aimed, w)
	setWorldRotation(s, b.Index, final)
	s.Update()
	return true
}
