package anim

import (
	"fmt"

	"go.uber.org/zap"
)

// Params is the accessor handed to transition conditions. Trigger reads are
// recorded so the machine can auto-clear every trigger that let a transition
// fire, preventing trigger cascades on later ticks.
type Params struct {
	m            *Machine
	readTriggers []string
}

// Float returns a float parameter, 0 if unset.
func (p *Params) Float(name string) float32 {
	return p.m.floats[name]
}

// Bool returns a bool parameter, false if unset.
func (p *Params) Bool(name string) bool {
	return p.m.bools[name]
}

// Trigger returns a trigger parameter and records the read.
func (p *Params) Trigger(name string) bool {
	p.readTriggers = append(p.readTriggers, name)
	return p.m.triggers[name]
}

// Condition is a predicate gating a transition.
type Condition func(p *Params) bool

// Transition connects two states. It is eligible when the machine's current
// state is From, the exit-time threshold (if any) has been reached, and all
// conditions hold.
type Transition struct {
	From     string
	To       string
	Duration float32

	HasExitTime bool
	ExitTime    float32 // normalized clip time in [0,1]

	Conditions []Condition
}

// AddCondition appends a predicate and returns the transition for chaining.
func (t *Transition) AddCondition(c Condition) *Transition {
	t.Conditions = append(t.Conditions, c)
	return t
}

// Machine is an animation state machine: a state table, an ordered
// transition list, and float/bool/trigger parameter maps. At most one
// cross-fade is active at a time; while fading no new transition starts.
// The incoming state restarts from time zero the moment its fade opens,
// not when the fade completes, so the fade-in samples the target from its
// first frame.
type Machine struct {
	states      map[string]*State
	transitions []*Transition

	current  *State
	previous *State

	active         *Transition
	transitionTime float32

	floats   map[string]float32
	bools    map[string]bool
	triggers map[string]bool

	log *zap.Logger
}

// NewMachine creates an empty state machine.
func NewMachine() *Machine {
	return &Machine{
		states:   make(map[string]*State),
		floats:   make(map[string]float32),
		bools:    make(map[string]bool),
		triggers: make(map[string]bool),
		log:      zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger.
func (m *Machine) SetLogger(l *zap.Logger) {
	if l != nil {
		m.log = l
	}
}

// CreateState adds a state for the clip. The first state created becomes the
// default current state. Fails on duplicate names.
func (m *Machine) CreateState(name string, clip Clip) (*State, error) {
	if _, exists := m.states[name]; exists {
		return nil, fmt.Errorf("state %q already exists", name)
	}
	s := NewState(name, clip)
	m.states[name] = s
	if m.current == nil {
		m.current = s
	}
	return s, nil
}

// State returns the named state, or nil.
func (m *Machine) State(name string) *State {
	return m.states[name]
}

// Current returns the active state, or nil.
func (m *Machine) Current() *State {
	return m.current
}

// CrossFading reports whether a transition blend is in progress.
func (m *Machine) CrossFading() bool {
	return m.active != nil
}

// CreateTransition registers a transition. Transitions are evaluated in
// insertion order; the first eligible one wins.
func (m *Machine) CreateTransition(from, to string, duration float32) (*Transition, error) {
	if _, ok := m.states[from]; !ok {
		return nil, fmt.Errorf("transition source %q not found", from)
	}
	if _, ok := m.states[to]; !ok {
		return nil, fmt.Errorf("transition target %q not found", to)
	}
	if duration < 0 {
		duration = 0
	}
	t := &Transition{From: from, To: to, Duration: duration}
	m.transitions = append(m.transitions, t)
	return t, nil
}

// SetCurrent switches immediately to the named state, resetting it and
// cancelling any cross-fade. Unknown names are a no-op.
func (m *Machine) SetCurrent(name string) {
	s, ok := m.states[name]
	if !ok {
		return
	}
	s.Reset()
	m.current = s
	m.previous = nil
	m.active = nil
	m.transitionTime = 0
}

// SetFloat sets a float parameter.
func (m *Machine) SetFloat(name string, v float32) { m.floats[name] = v }

// SetBool sets a bool parameter.
func (m *Machine) SetBool(name string, v bool) { m.bools[name] = v }

// SetTrigger arms a trigger. Triggers that cause a transition are consumed.
func (m *Machine) SetTrigger(name string) { m.triggers[name] = true }

// ResetTrigger disarms a trigger.
func (m *Machine) ResetTrigger(name string) { m.triggers[name] = false }

// Float returns a float parameter value.
func (m *Machine) Float(name string) float32 { return m.floats[name] }

// Bool returns a bool parameter value.
func (m *Machine) Bool(name string) bool { return m.bools[name] }

// eligible evaluates a transition's gate against the current state and, on
// success, returns the triggers read along the way.
func (m *Machine) eligible(t *Transition) ([]string, bool) {
	if t.From != m.current.Name {
		return nil, false
	}
	if t.HasExitTime && m.current.NormalizedTime() < t.ExitTime {
		return nil, false
	}
	p := &Params{m: m}
	for _, cond := range t.Conditions {
		if !cond(p) {
			return nil, false
		}
	}
	return p.readTriggers, true
}

// Update advances the machine by dt and writes the output pose into out,
// using scratch as blend storage. The output always ends with world
// transforms computed.
func (m *Machine) Update(dt float32, out, scratch *Pose) {
	if m.current == nil || out == nil {
		return
	}

	// 1. Advance the current state.
	m.current.Update(dt)

	if m.active != nil {
		// 2. Advance the cross-fade; finalize when it completes.
		m.transitionTime += dt
		if m.transitionTime >= m.active.Duration {
			m.log.Debug("cross-fade complete",
				zap.String("from", m.previous.Name),
				zap.String("to", m.current.Name))
			m.previous = nil
			m.active = nil
			m.transitionTime = 0
		}
	} else {
		// 3. Look for the first eligible transition in insertion order.
		for _, t := range m.transitions {
			readTriggers, ok := m.eligible(t)
			if !ok {
				continue
			}
			m.beginTransition(t, readTriggers)
			break
		}
	}

	// 4. Compose the output pose.
	if m.active == nil {
		m.current.SamplePose(out)
	} else {
		w := float32(1)
		if m.active.Duration > 0 {
			w = m.transitionTime / m.active.Duration
		}
		m.previous.SamplePose(out)
		m.current.SamplePose(scratch)
		out.Blend(scratch, w)
	}
	out.CalculateWorldTransforms()
}

func (m *Machine) beginTransition(t *Transition, readTriggers []string) {
	target := m.states[t.To]

	// Consume every trigger whose read let this transition fire.
	for _, name := range readTriggers {
		m.triggers[name] = false
	}

	m.log.Debug("transition",
		zap.String("from", t.From),
		zap.String("to", t.To),
		zap.Float32("duration", t.Duration))

	target.Reset()
	m.previous = m.current
	m.current = target
	m.transitionTime = 0

	if t.Duration <= 0 {
		// Instant switch, no blend phase.
		m.previous = nil
		return
	}
	m.active = t
}
