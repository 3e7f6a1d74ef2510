package anim

import "github.com/chewxy/math32"

// CompletionFunc is invoked exactly once when a non-looping state reaches
// the end of its clip.
type CompletionFunc func(s *State)

// State is one named playback slot: a clip plus speed, weight, looping mode,
// playback time, and a one-shot completion latch.
type State struct {
	Name    string
	Clip    Clip
	Weight  float32
	Looping bool

	OnComplete CompletionFunc

	speed     float32
	time      float32
	completed bool
}

// NewState creates a state playing at normal speed with full weight.
func NewState(name string, clip Clip) *State {
	return &State{
		Name:   name,
		Clip:   clip,
		Weight: 1,
		speed:  1,
	}
}

// SetSpeed sets the playback speed multiplier. Negative speeds clamp to 0.
func (s *State) SetSpeed(v float32) {
	if v < 0 || math32.IsNaN(v) {
		v = 0
	}
	s.speed = v
}

// Speed returns the playback speed multiplier.
func (s *State) Speed() float32 { return s.speed }

// Time returns the current playback time in seconds.
func (s *State) Time() float32 { return s.time }

// SetTime jumps to a playback time, clamped to [0, duration].
func (s *State) SetTime(t float32) {
	d := s.duration()
	if t < 0 {
		t = 0
	}
	if t > d {
		t = d
	}
	s.time = t
}

// Completed reports whether a non-looping state has finished.
func (s *State) Completed() bool { return s.completed }

// Reset rewinds the state and clears the completion latch.
func (s *State) Reset() {
	s.time = 0
	s.completed = false
}

func (s *State) duration() float32 {
	if s.Clip == nil {
		return 0
	}
	return s.Clip.Duration()
}

// NormalizedTime returns time/duration in [0,1], or 1 for empty clips.
func (s *State) NormalizedTime() float32 {
	d := s.duration()
	if d <= 0 {
		return 1
	}
	return s.time / d
}

// Update advances playback by dt seconds. Looping states wrap preserving
// phase; non-looping states clamp to the end and fire OnComplete once.
func (s *State) Update(dt float32) {
	d := s.duration()
	if d <= 0 {
		s.finish()
		return
	}

	t := s.time + dt*s.speed
	if t < d {
		s.time = t
		return
	}

	if s.Looping {
		s.time = math32.Mod(t, d)
		return
	}

	s.time = d
	s.finish()
}

func (s *State) finish() {
	if s.completed {
		return
	}
	s.completed = true
	if !s.Looping && s.OnComplete != nil {
		s.OnComplete(s)
	}
}

// SamplePose writes the state's pose at the current time. Without a clip the
// pose resets to the skeleton's rest locals.
func (s *State) SamplePose(pose *Pose) {
	if s.Clip == nil {
		pose.Reset()
		return
	}
	s.Clip.Sample(s.time, pose)
}
