package ik

import (
	"go.uber.org/zap"

	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/pkg/math"
)

// Target binds a solver to a chain tip and a world-space goal.
type Target struct {
	Solver   Solver
	TipBone  string
	Position math.Vec3
	Enabled  bool
}

// Controller multiplexes named IK targets over one skeleton. It satisfies
// anim.PostSolver so an animation controller can run it after pose apply.
// Targets solve in registration order, so later targets see the adjustments
// of earlier ones.
type Controller struct {
	targets map[string]*Target
	order   []string

	log *zap.Logger
}

// NewController creates an empty IK controller.
func NewController() *Controller {
	return &Controller{
		targets: make(map[string]*Target),
		log:     zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger.
func (c *Controller) SetLogger(l *zap.Logger) {
	if l != nil {
		c.log = l
	}
}

// AddTarget registers an enabled target under the name, replacing any
// previous binding while keeping its original solve order.
func (c *Controller) AddTarget(name string, solver Solver, tipBone string) *Target {
	t := &Target{Solver: solver, TipBone: tipBone, Enabled: true}
	if _, exists := c.targets[name]; !exists {
		c.order = append(c.order, name)
	}
	c.targets[name] = t
	return t
}

// Target returns the named target, or nil.
func (c *Controller) Target(name string) *Target {
	return c.targets[name]
}

// RemoveTarget unregisters a target. Unknown names are a no-op.
func (c *Controller) RemoveTarget(name string) {
	if _, ok := c.targets[name]; !ok {
		return
	}
	delete(c.targets, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetTargetPosition moves a target's world-space goal.
func (c *Controller) SetTargetPosition(name string, pos math.Vec3) {
	if t, ok := c.targets[name]; ok {
		t.Position = pos
	}
}

// SetEnabled toggles a target without unregistering it.
func (c *Controller) SetEnabled(name string, enabled bool) {
	if t, ok := c.targets[name]; ok {
		t.Enabled = enabled
	}
}

// SolveAll runs every enabled target in registration order.
func (c *Controller) SolveAll(s *anim.Skeleton) {
	if s == nil {
		return
	}
	for _, name := range c.order {
		t := c.targets[name]
		if !t.Enabled || t.Solver == nil {
			continue
		}
		if !t.Solver.Solve(t.TipBone, t.Position, s) {
			c.log.Warn("ik solve failed",
				zap.String("target", name),
				zap.String("tip", t.TipBone))
		}
	}
}
