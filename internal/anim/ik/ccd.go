package ik

import (
	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// CCD is the cyclic coordinate descent solver: each iteration sweeps the
// chain from the joint nearest the tip back to the root, rotating every
// joint so the tip moves toward the target.
type CCD struct {
	Tolerance     float32
	MaxIterations int
}

// NewCCD creates a solver with default tolerance and iteration cap.
func NewCCD() *CCD {
	return &CCD{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Solve runs CCD sweeps until the tip is within tolerance or the iteration
// cap is hit. Returns false only when no usable chain exists.
func (k *CCD) Solve(tipBone string, target math.Vec3, s *anim.Skeleton) bool {
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

	s.Update()
	for it := 0; it < iters; it++ {
		if s.BoneAt(tip).World.Position.Distance(target) < k.Tolerance {
			return true
		}

		for j := n - 2; j >= 0; j-- {
			jointPos := s.BoneAt(c[j]).World.Position
			tipPos := s.BoneAt(tip).World.Position

			toTip := tipPos.Sub(jointPos)
			toTarget := target.Sub(jointPos)
			if toTip.Length() < epsilon || toTarget.Length() < epsilon {
				continue
			}

			delta := math.QuatBetween(toTip, toTarget)
			setWorldRotation(s, c[j], delta.Mul(s.BoneAt(c[j]).World.Rotation))
			s.Update()
		}
	}
	return true
}
