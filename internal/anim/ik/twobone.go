package ik

import (
	"github.com/chewxy/math32"

	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// TwoBone is the analytic solver for a three-joint chain (root, mid, end).
// One pass of law-of-cosines geometry places the end at the target, or at
// the clamped reachable distance when the target is outside [|L1-L2|,
// L1+L2]. An optional pole vector picks the bend plane.
type TwoBone struct {
	Pole    math.Vec3
	HasPole bool
}

// NewTwoBone creates a solver without a pole vector.
func NewTwoBone() *TwoBone {
	return &TwoBone{}
}

// SetPole configures the pole vector controlling the bend direction.
func (k *TwoBone) SetPole(p math.Vec3) {
	k.Pole = p
	k.HasPole = true
}

// Solve positions the three-joint chain ending at tipBone. Always returns
// true once a chain of three bones exists: clamped and degenerate targets
// still produce a stable approximation.
func (k *TwoBone) Solve(tipBone string, target math.Vec3, s *anim.Skeleton) bool {
	c := chain(s, tipBone, 3)
	if len(c) < 3 {
		return false
	}
	root, mid, end := c[0], c[1], c[2]

	s.Update()
	rootPos := s.BoneAt(root).World.Position
	midPos := s.BoneAt(mid).World.Position
	endPos := s.BoneAt(end).World.Position

	l1 := midPos.Distance(rootPos)
	l2 := endPos.Distance(midPos)
	if l1 < epsilon || l2 < epsilon {
		// Zero-length segment: nothing meaningful to rotate.
		return true
	}

	toTarget := target.Sub(rootPos)
	dist := toTarget.Length()

	var dir math.Vec3
	if dist < epsilon {
		// Target on the root: fold the chain along the current root
		// direction.
		dir = midPos.Sub(rootPos).Normalize()
		dist = 0
	} else {
		dir = toTarget.Scale(1 / dist)
	}

	d := dist
	if d > l1+l2 {
		d = l1 + l2
	}

	// Root joint angle from the law of cosines; clamping the cosine covers
	// targets inside the inner radius |L1-L2|.
	cosAlpha := float32(1)
	if d > epsilon {
		cosAlpha = clamp((l1*l1+d*d-l2*l2)/(2*l1*d), -1, 1)
	}
	alpha := math32.Acos(cosAlpha)

	bendAxis := k.bendAxis(dir, midPos.Sub(rootPos))

	// Aim the root so the first segment deviates from the target line by
	// alpha in the bend plane.
	desiredMidDir := math.QuatFromAxisAngle(bendAxis, alpha).Rotate(dir)
	curMidDir := midPos.Sub(rootPos).Normalize()
	deltaRoot := math.QuatBetween(curMidDir, desiredMidDir)
	setWorldRotation(s, root, deltaRoot.Mul(s.BoneAt(root).World.Rotation))
	s.Update()

	// Point the mid joint at the clamped target.
	newMidPos := s.BoneAt(mid).World.Position
	newEndPos := s.BoneAt(end).World.Position
	clamped := rootPos.Add(dir.Scale(d))

	desiredEndDir := clamped.Sub(newMidPos)
	curEndDir := newEndPos.Sub(newMidPos)
	if desiredEndDir.Length() > epsilon && curEndDir.Length() > epsilon {
		deltaMid := math.QuatBetween(curEndDir, desiredEndDir)
		setWorldRotation(s, mid, deltaMid.Mul(s.BoneAt(mid).World.Rotation))
		s.Update()
	}

	return true
}

// bendAxis returns the axis the chain bends around. With a pole vector the
// bend plane is spanned by the target direction and the pole; otherwise the
// current chain plane is kept, with a fixed fallback for colinear setups.
func (k *TwoBone) bendAxis(dir, toMid math.Vec3) math.Vec3 {
	if k.HasPole {
		right := dir.Cross(k.Pole)
		if right.Length() > epsilon {
			return right.Normalize()
		}
		return math.Vec3{Z: 1}
	}
	axis := dir.Cross(toMid)
	if axis.Length() > epsilon {
		return axis.Normalize()
	}
	return math.Vec3{Z: 1}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
