package anim

import "github.com/atelier3d/atelier/pkg/math"

// Clip produces a pose for a time in [0, Duration]. The core treats a clip
// as a pure function of (skeleton, t); loaders provide concrete clips.
type Clip interface {
	Name() string
	Duration() float32
	// Sample writes the clip's transforms at time t into the pose's locals.
	// Bones without a track keep their current pose values.
	Sample(t float32, pose *Pose)
}

// VecKey is a position or scale keyframe.
type VecKey struct {
	Time  float32
	Value math.Vec3
}

// RotKey is a rotation keyframe.
type RotKey struct {
	Time  float32
	Value math.Quat
}

// Track holds the keyframe channels for one bone, addressed by name so a
// clip can be shared between skeletons with matching bone names.
type Track struct {
	Bone      string
	PosKeys   []VecKey
	RotKeys   []RotKey
	ScaleKeys []VecKey
}

// SampledClip is a keyframed clip: one track per animated bone.
type SampledClip struct {
	name     string
	duration float32
	tracks   []Track
}

// NewSampledClip creates an empty clip of the given duration.
func NewSampledClip(name string, duration float32) *SampledClip {
	if duration < 0 {
		duration = 0
	}
	return &SampledClip{name: name, duration: duration}
}

// Name returns the clip name.
func (c *SampledClip) Name() string { return c.name }

// Duration returns the clip length in seconds.
func (c *SampledClip) Duration() float32 { return c.duration }

// AddTrack appends a bone track.
func (c *SampledClip) AddTrack(t Track) {
	c.tracks = append(c.tracks, t)
}

// TrackCount returns the number of bone tracks (the channel set size).
func (c *SampledClip) TrackCount() int { return len(c.tracks) }

// Sample evaluates every track at time t and writes the results into the
// pose. Channels with no keys leave that component of the local untouched.
func (c *SampledClip) Sample(t float32, pose *Pose) {
	if pose == nil || !pose.Valid() {
		return
	}
	for i := range c.tracks {
		tr := &c.tracks[i]
		bone := pose.Skeleton().Bone(tr.Bone)
		if bone == nil {
			continue
		}
		local := &pose.Local[bone.Index]
		if len(tr.PosKeys) > 0 {
			local.Position = interpolateVecKeys(tr.PosKeys, t)
		}
		if len(tr.RotKeys) > 0 {
			local.Rotation = interpolateRotKeys(tr.RotKeys, t)
		}
		if len(tr.ScaleKeys) > 0 {
			local.Scale = interpolateVecKeys(tr.ScaleKeys, t)
		}
	}
}

// surroundingKeys finds the keyframe pair bracketing time t in a slice
// sorted by time, returning equal indices at or past the last key.
func surroundingKeys(times func(int) float32, n int, t float32) (prev, next int) {
	for i := 0; i < n; i++ {
		if times(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	return prev, next
}

func interpolateVecKeys(keys []VecKey, t float32) math.Vec3 {
	if len(keys) == 1 {
		return keys[0].Value
	}
	prev, next := surroundingKeys(func(i int) float32 { return keys[i].Time }, len(keys), t)
	if prev == next {
		return keys[prev].Value
	}
	k0, k1 := keys[prev], keys[next]
	f := float32(0)
	if k1.Time != k0.Time {
		f = (t - k0.Time) / (k1.Time - k0.Time)
	}
	return k0.Value.Lerp(k1.Value, f)
}

func interpolateRotKeys(keys []RotKey, t float32) math.Quat {
	if len(keys) == 1 {
		return keys[0].Value
	}
	prev, next := surroundingKeys(func(i int) float32 { return keys[i].Time }, len(keys), t)
	if prev == next {
		return keys[prev].Value
	}
	k0, k1 := keys[prev], keys[next]
	f := float32(0)
	if k1.Time != k0.Time {
		f = (t - k0.Time) / (k1.Time - k0.Time)
	}
	return k0.Value.Slerp(k1.Value, f)
}
