// Package ik provides inverse-kinematics solvers that mutate skeleton bone
// locals in place: analytic two-bone, FABRIK, CCD, and damped-least-squares
// Jacobian, plus a look-at constraint and a multiplexing controller.
//
// All solvers share one contract: Solve(tipBone, targetWorldPosition,
// skeleton) walks the parent chain from the named tip, fails (returns false)
// only when the chain is structurally unusable, and otherwise writes an
// approximation and returns true. Convergence quality is a property, not a
// failure. Solvers must not run concurrently on overlapping chains.
package ik

import (
	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// Solver is the uniform solver contract.
type Solver interface {
	Solve(tipBone string, target math.Vec3, s *anim.Skeleton) bool
}

// Default solver parameters.
const (
	DefaultTolerance     = 0.001
	DefaultMaxIterations = 10
)

const epsilon = 1e-6

// chain returns bone indices from chain root to the named tip by following
// parents. maxLen > 0 limits the walk to the last maxLen bones. Returns nil
// when the tip is unknown or the chain is shorter than 2.
func chain(s *anim.Skeleton, tip string, maxLen int) []int {
	b := s.Bone(tip)
	if b == nil {
		return nil
	}

	var reversed []int
	for idx := b.Index; idx >= 0; idx = s.BoneAt(idx).Parent {
		reversed = append(reversed, idx)
		if maxLen > 0 && len(reversed) == maxLen {
			break
		}
	}
	if len(reversed) < 2 {
		return nil
	}

	out := make([]int, len(reversed))
	for i, idx := range reversed {
		out[len(reversed)-1-i] = idx
	}
	return out
}

// worldPositions gathers current world positions for the chain. The skeleton
// must be updated first.
func worldPositions(s *anim.Skeleton, c []int) []math.Vec3 {
	out := make([]math.Vec3, len(c))
	for i, idx := range c {
		out[i] = s.BoneAt(idx).World.Position
	}
	return out
}

// setWorldRotation rewrites a bone's local rotation so its world rotation
// becomes rot, using the parent's current world transform.
func setWorldRotation(s *anim.Skeleton, boneIdx int, rot math.Quat) {
	b := s.BoneAt(boneIdx)
	if b.Parent >= 0 {
		parent := s.BoneAt(b.Parent)
		b.Local.Rotation = parent.World.Rotation.Inverse().Mul(rot)
	} else {
		b.Local.Rotation = rot
	}
	s.MarkDirty()
}
