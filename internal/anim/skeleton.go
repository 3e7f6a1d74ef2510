// Package anim implements the skeletal animation core: bone hierarchies,
// poses, sampled clips, animation states, and the blending state machine.
package anim

import (
	"fmt"

	"github.com/atelier3d/atelier/pkg/math"
)

// Bone is a node in a skeletal tree. Bones are stored by value inside the
// skeleton's bone slice; indices are stable for the life of the skeleton and
// parents are referenced by index, never by pointer ownership.
type Bone struct {
	Name     string
	Index    int
	Parent   int // -1 for the root
	Children []int

	Local math.Transform
	World math.Transform

	// bindPose is the world transform captured by CalculateBindPose.
	bindPose math.Transform

	Animated bool
}

// BindPose returns the world transform captured at bind time.
func (b *Bone) BindPose() math.Transform {
	return b.bindPose
}

// Skeleton owns a vector of bones with stable indices, a name lookup map,
// and a single root. Bones are only added through CreateBone, which keeps
// the invariant that a parent's index is always smaller than its children's.
type Skeleton struct {
	bones  []Bone
	byName map[string]int
	root   int
	dirty  bool
}

// NewSkeleton creates an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{
		byName: make(map[string]int),
		root:   -1,
	}
}

// CreateBone appends a bone with the next index. parentName may be empty:
// the first parentless bone becomes the root, later parentless bones are
// attached under the root. Fails if the name is taken or the parent is
// unknown.
func (s *Skeleton) CreateBone(name, parentName string) (*Bone, error) {
	if _, exists := s.byName[name]; exists {
		return nil, fmt.Errorf("bone %q already exists", name)
	}

	parent := -1
	if parentName != "" {
		idx, ok := s.byName[parentName]
		if !ok {
			return nil, fmt.Errorf("parent bone %q not found", parentName)
		}
		parent = idx
	} else if s.root >= 0 {
		parent = s.root
	}

	idx := len(s.bones)
	s.bones = append(s.bones, Bone{
		Name:   name,
		Index:  idx,
		Parent: parent,
		Local:  math.TransformIdentity(),
		World:  math.TransformIdentity(),
	})
	s.byName[name] = idx

	if parent >= 0 {
		s.bones[parent].Children = append(s.bones[parent].Children, idx)
	} else {
		s.root = idx
	}

	s.dirty = true
	return &s.bones[idx], nil
}

// BoneCount returns the number of bones.
func (s *Skeleton) BoneCount() int {
	return len(s.bones)
}

// Bone returns the named bone, or nil.
func (s *Skeleton) Bone(name string) *Bone {
	idx, ok := s.byName[name]
	if !ok {
		return nil
	}
	return &s.bones[idx]
}

// BoneAt returns the bone at index i, or nil if out of range.
func (s *Skeleton) BoneAt(i int) *Bone {
	if i < 0 || i >= len(s.bones) {
		return nil
	}
	return &s.bones[i]
}

// Root returns the root bone, or nil for an empty skeleton.
func (s *Skeleton) Root() *Bone {
	return s.BoneAt(s.root)
}

// SetLocal sets a bone's local transform by name. Non-finite components are
// replaced with identity values. Unknown names are a no-op.
func (s *Skeleton) SetLocal(name string, t math.Transform) {
	b := s.Bone(name)
	if b == nil {
		return
	}
	b.Local = t.Sanitize()
	s.dirty = true
}

// MarkDirty flags world transforms as stale after direct Local mutation.
func (s *Skeleton) MarkDirty() {
	s.dirty = true
}

// Update recomputes every world transform top-down. Construction order
// guarantees a parent's index precedes its children, so a single forward
// pass suffices.
func (s *Skeleton) Update() {
	for i := range s.bones {
		b := &s.bones[i]
		if b.Parent >= 0 {
			b.World = s.bones[b.Parent].World.Compose(b.Local)
		} else {
			b.World = b.Local
		}
	}
	s.dirty = false
}

// ensure recomputes world transforms if they are stale.
func (s *Skeleton) ensure() {
	if s.dirty {
		s.Update()
	}
}

// CalculateBindPose stamps every bone's current world transform as its bind
// pose. Call once after posing the rest position.
func (s *Skeleton) CalculateBindPose() {
	s.ensure()
	for i := range s.bones {
		s.bones[i].bindPose = s.bones[i].World
	}
}

// BoneMatrices returns current world-transform matrices in index order.
func (s *Skeleton) BoneMatrices() []math.Mat4 {
	s.ensure()
	out := make([]math.Mat4, len(s.bones))
	for i := range s.bones {
		out[i] = s.bones[i].World.ToMat4()
	}
	return out
}

// InverseBindMatrices returns the inverse bind-pose matrices in index order,
// the skinning-side counterpart of BoneMatrices.
func (s *Skeleton) InverseBindMatrices() []math.Mat4 {
	out := make([]math.Mat4, len(s.bones))
	for i := range s.bones {
		out[i] = s.bones[i].bindPose.Inverse().ToMat4()
	}
	return out
}
