package anim

import "github.com/atelier3d/atelier/pkg/math"

// Pose holds per-bone local and derived world transforms for one skeleton at
// one instant. A pose is valid only while its skeleton is alive and has not
// grown; pose algebra between poses of different skeletons is a no-op.
type Pose struct {
	skeleton *Skeleton

	Local []math.Transform
	World []math.Transform
}

// NewPose creates a pose initialized from the skeleton's current locals.
func NewPose(s *Skeleton) *Pose {
	p := &Pose{
		skeleton: s,
		Local:    make([]math.Transform, s.BoneCount()),
		World:    make([]math.Transform, s.BoneCount()),
	}
	p.Reset()
	return p
}

// Skeleton returns the skeleton this pose was built for.
func (p *Pose) Skeleton() *Skeleton {
	return p.skeleton
}

// Valid reports whether the pose still matches its skeleton's size.
func (p *Pose) Valid() bool {
	return p.skeleton != nil && len(p.Local) == p.skeleton.BoneCount()
}

// Reset copies the skeleton's current local transforms into the pose.
func (p *Pose) Reset() {
	for i := range p.Local {
		p.Local[i] = p.skeleton.bones[i].Local
	}
}

// CopyFrom copies another pose's locals. No-op on skeleton mismatch.
func (p *Pose) CopyFrom(other *Pose) {
	if !p.compatible(other) {
		return
	}
	copy(p.Local, other.Local)
}

func (p *Pose) compatible(other *Pose) bool {
	return other != nil && p.skeleton == other.skeleton &&
		p.Valid() && other.Valid()
}

// Blend interpolates each local toward other's by weight w.
func (p *Pose) Blend(other *Pose, w float32) {
	if !p.compatible(other) {
		return
	}
	for i := range p.Local {
		p.Local[i] = p.Local[i].Interpolate(other.Local[i], w)
	}
}

// Add overlays other additively: position accumulates scaled by w, rotation
// slerps toward the composed rotation by w. Scale is untouched.
func (p *Pose) Add(other *Pose, w float32) {
	if !p.compatible(other) {
		return
	}
	for i := range p.Local {
		l := &p.Local[i]
		l.Position = l.Position.Add(other.Local[i].Position.Scale(w))
		l.Rotation = l.Rotation.Slerp(l.Rotation.Mul(other.Local[i].Rotation), w)
	}
}

// Multiply composes each local with other's local in p's frame.
func (p *Pose) Multiply(other *Pose) {
	if !p.compatible(other) {
		return
	}
	for i := range p.Local {
		p.Local[i] = p.Local[i].Compose(other.Local[i])
	}
}

// CalculateWorldTransforms fills World from Local in one top-down pass.
// Relies on the skeleton invariant that a parent index precedes its children.
func (p *Pose) CalculateWorldTransforms() {
	if !p.Valid() {
		return
	}
	for i := range p.Local {
		parent := p.skeleton.bones[i].Parent
		if parent >= 0 {
			p.World[i] = p.World[parent].Compose(p.Local[i])
		} else {
			p.World[i] = p.Local[i]
		}
	}
}

// CalculateLocalTransforms is the inverse pass: recovers each local from the
// world array as parent.world⁻¹ ∘ world.
func (p *Pose) CalculateLocalTransforms() {
	if !p.Valid() {
		return
	}
	for i := range p.World {
		parent := p.skeleton.bones[i].Parent
		if parent >= 0 {
			p.Local[i] = p.World[parent].Inverse().Compose(p.World[i])
		} else {
			p.Local[i] = p.World[i]
		}
	}
}

// ApplyToSkeleton writes the pose locals back into the skeleton's bones and
// marks world transforms stale.
func (p *Pose) ApplyToSkeleton() {
	if !p.Valid() {
		return
	}
	for i := range p.Local {
		p.skeleton.bones[i].Local = p.Local[i]
	}
	p.skeleton.MarkDirty()
}
