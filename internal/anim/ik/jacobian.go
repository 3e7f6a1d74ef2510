package ik

import (
	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// Jacobian is a damped-least-squares transpose solver over single-axis
// joints. Each joint rotates about its world-space Y axis; damping keeps the
// step bounded near singular configurations. An optional secondary task runs
// after every iteration and may nudge the skeleton toward soft objectives
// (posture bias, joint limits) in the solver's null space.
type Jacobian struct {
	Tolerance     float32
	MaxIterations int
	Damping       float32

	SecondaryTask func(s *anim.Skeleton)
}

// NewJacobian creates a solver with default tolerance, iterations, and
// damping.
func NewJacobian() *Jacobian {
	return &Jacobian{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Damping:       0.5,
	}
}

// Solve iterates damped gradient steps until the tip is within tolerance or
// the iteration cap is hit. Returns false only when no usable chain exists.
func (k *Jacobian) Solve(tipBone string, target math.Vec3, s *anim.Skeleton) bool {
	c := chain(s, tipBone, 0)
	if len(c) < 2 {
		return false
	}
	n := len(c)
	tip := c[n-1]

	iters := k.MaxIterations
	if iters <= 0 {
		iters = DefaultMaxIterations
	}
	lambda := k.Damping
	if lambda <= 0 {
		lambda = 0.5
	}

	s.Update()
	for it := 0; it < iters; it++ {
		tipPos := s.BoneAt(tip).World.Position
		err := target.Sub(tipPos)
		if err.Length() < k.Tolerance {
			return true
		}

		for j := 0; j < n-1; j++ {
			b := s.BoneAt(c[j])
			jointPos := b.World.Position
			axis := b.World.Rotation.Rotate(math.Vec3{Y: 1})

			// One row of the transpose: J = axis x (tip - joint).
			jac := axis.Cross(s.BoneAt(tip).World.Position.Sub(jointPos))
			denom := jac.Dot(jac) + lambda*lambda
			if denom < epsilon {
				continue
			}
			theta := jac.Dot(target.Sub(s.BoneAt(tip).World.Position)) / denom

			delta := math.QuatFromAxisAngle(axis, theta)
			setWorldRotation(s, c[j], delta.Mul(b.World.Rotation))
			s.Update()
		}

		if k.SecondaryTask != nil {
			k.SecondaryTask(s)
			s.Update()
		}
	}
	return true
}
