package ik

import (
	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// FABRIK is the forward-and-backward reaching solver. It iterates on joint
// positions, then converts them to parent-space before writing them into
// bone locals, so chains under non-identity parents stay correct.
type FABRIK struct {
	Tolerance     float32
	MaxIterations int

	// TargetRotation, when set, is forced onto the tip bone after the solve.
	TargetRotation *math.Quat
}

// NewFABRIK creates a solver with default tolerance and iteration cap.
func NewFABRIK() *FABRIK {
	return &FABRIK{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Solve runs the position passes and writes the result back into the chain.
// Returns false only when no usable chain exists.
func (k *FABRIK) Solve(tipBone string, target math.Vec3, s *anim.Skeleton) bool {
	c := chain(s, tipBone, 0)
	if len(c) < 2 {
		return false
	}
	n := len(c)

	s.Update()
	p := worldPositions(s, c)
	rootOriginal := p[0]

	lengths := make([]float32, n-1)
	total := float32(0)
	for i := 0; i < n-1; i++ {
		lengths[i] = p[i+1].Distance(p[i])
		total += lengths[i]
	}

	if target.Distance(rootOriginal) >= total {
		// Unreachable: fully extend toward the target in one forward pass.
		dir := target.Sub(rootOriginal).Normalize()
		if dir.Length() < epsilon {
			dir = math.Vec3{Z: 1}
		}
		for i := 0; i < n-1; i++ {
			p[i+1] = p[i].Add(dir.Scale(lengths[i]))
		}
	} else {
		iters := k.MaxIterations
		if iters <= 0 {
			iters = DefaultMaxIterations
		}
		for it := 0; it < iters; it++ {
			// Backward pass: drag the tip onto the target.
			p[n-1] = target
			for i := n - 2; i >= 0; i-- {
				dir := p[i].Sub(p[i+1]).Normalize()
				if dir.Length() < epsilon {
					dir = math.Vec3{Z: 1}
				}
				p[i] = p[i+1].Add(dir.Scale(lengths[i]))
			}

			// Forward pass: re-anchor the root.
			p[0] = rootOriginal
			for i := 0; i < n-2; i++ {
				dir := p[i+1].Sub(p[i]).Normalize()
				if dir.Length() < epsilon {
					dir = math.Vec3{Z: 1}
				}
				p[i+1] = p[i].Add(dir.Scale(lengths[i]))
			}
			p[n-1] = p[n-2].Add(p[n-1].Sub(p[n-2]).Normalize().Scale(lengths[n-2]))

			if p[n-1].Distance(target) < k.Tolerance {
				break
			}
		}
	}

	k.writeBack(s, c, p)
	s.Update()
	return true
}

// writeBack stores the solved world positions as parent-space locals. The
// chain is written root-down; each bone's parent world is rebuilt from the
// already-written position and the unchanged rotation/scale.
func (k *FABRIK) writeBack(s *anim.Skeleton, c []int, p []math.Vec3) {
	parentWorld := s.BoneAt(c[0]).World
	parentWorld.Position = p[0]

	for i := 1; i < len(c); i++ {
		b := s.BoneAt(c[i])
		b.Local.Position = parentWorld.Inverse().Apply(p[i])

		next := b.World
		next.Position = p[i]

		if i == len(c)-1 && k.TargetRotation != nil {
			b.Local.Rotation = parentWorld.Rotation.Inverse().Mul(*k.TargetRotation)
		}
		parentWorld = next
	}
	s.MarkDirty()
}
