package anim

import (
	"fmt"

	"go.uber.org/zap"
)

// PostSolver runs after the pose has been applied and world transforms are
// current. The IK controller satisfies this.
type PostSolver interface {
	SolveAll(s *Skeleton)
}

// Controller drives one skeleton: per frame it advances the state machine,
// applies the resulting pose, refreshes world transforms, and hands the
// skeleton to the configured post-solver. The whole advance runs to
// completion on the calling goroutine; nothing here is safe for concurrent
// mutation of the skeleton.
type Controller struct {
	skeleton *Skeleton
	machine  *Machine
	post     PostSolver

	clips map[string]Clip

	pose    *Pose
	scratch *Pose

	speed  float32
	paused bool

	log *zap.Logger
}

// NewController creates a controller for the skeleton.
func NewController(s *Skeleton) *Controller {
	return &Controller{
		skeleton: s,
		clips:    make(map[string]Clip),
		pose:     NewPose(s),
		scratch:  NewPose(s),
		speed:    1,
		log:      zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger on the controller and its machine.
func (c *Controller) SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	c.log = l
	if c.machine != nil {
		c.machine.SetLogger(l)
	}
}

// SetMachine attaches the state machine.
func (c *Controller) SetMachine(m *Machine) {
	c.machine = m
	if m != nil {
		m.SetLogger(c.log)
	}
}

// Machine returns the attached state machine, or nil.
func (c *Controller) Machine() *Machine { return c.machine }

// SetPostSolver attaches an IK stage run after every advance.
func (c *Controller) SetPostSolver(p PostSolver) { c.post = p }

// Pose returns the controller's output pose from the last advance.
func (c *Controller) Pose() *Pose { return c.pose }

// SetSpeed sets the global playback speed multiplier; negatives clamp to 0.
func (c *Controller) SetSpeed(v float32) {
	if v < 0 {
		v = 0
	}
	c.speed = v
}

// Speed returns the global playback speed multiplier.
func (c *Controller) Speed() float32 { return c.speed }

// Pause stops time accumulation.
func (c *Controller) Pause() { c.paused = true }

// Resume restarts time accumulation.
func (c *Controller) Resume() { c.paused = false }

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool { return c.paused }

// AddClip registers a clip for name-based playback via Play.
func (c *Controller) AddClip(clip Clip) {
	if clip != nil {
		c.clips[clip.Name()] = clip
	}
}

// Clip returns a registered clip, or nil.
func (c *Controller) Clip(name string) Clip { return c.clips[name] }

// Play switches the machine to the named state from its start. A name with
// no state but a registered clip gets a state created for it on the fly.
func (c *Controller) Play(name string) error {
	if c.machine == nil {
		c.machine = NewMachine()
		c.machine.SetLogger(c.log)
	}
	if c.machine.State(name) == nil {
		clip, ok := c.clips[name]
		if !ok {
			return fmt.Errorf("no state or clip named %q", name)
		}
		if _, err := c.machine.CreateState(name, clip); err != nil {
			return err
		}
	}
	c.machine.SetCurrent(name)
	c.log.Debug("play", zap.String("state", name))
	return nil
}

// Advance runs one frame: state update, transition evaluation, pose compose,
// world-transform refresh, then the post-solver.
func (c *Controller) Advance(dt float32) {
	if c.paused || c.skeleton == nil {
		return
	}

	if c.machine != nil {
		c.machine.Update(dt*c.speed, c.pose, c.scratch)
		c.pose.ApplyToSkeleton()
	}
	c.skeleton.Update()

	if c.post != nil {
		c.post.SolveAll(c.skeleton)
	}
}
