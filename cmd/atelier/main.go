// Package main is the entry point for the Atelier editor core demo. It
// builds a small rig, plays a cross-faded walk with an IK-corrected hand,
// performs a few undoable edits, and prints the resulting scene state.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/atelier3d/atelier/internal/anim"
	"github.com/atelier3d/atelier/internal/anim/ik"
	"github.com/atelier3d/atelier/internal/config"
	"github.com/atelier3d/atelier/internal/history"
	"github.com/atelier3d/atelier/internal/logger"
	"github.com/atelier3d/atelier/internal/session"
	"github.com/atelier3d/atelier/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Atelier editor core ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("demo finished")
}

func run(cfg *config.Config) error {
	sess := session.New(cfg, logger.Log)

	// A three-bone arm rig.
	skel := anim.NewSkeleton()
	skel.CreateBone("shoulder", "")
	skel.CreateBone("elbow", "shoulder")
	skel.CreateBone("hand", "elbow")

	local := math.TransformIdentity()
	local.Position = math.Vec3{X: 1}
	skel.SetLocal("elbow", local)
	skel.SetLocal("hand", local)
	skel.CalculateBindPose()

	rig := sess.Registry.Create("rig", "arm")
	if rig == nil {
		return fmt.Errorf("registry refused the rig object")
	}

	// Two clips: rest and reach, cross-faded by the machine.
	rest := anim.NewSampledClip("rest", 1)
	rest.AddTrack(anim.Track{
		Bone:    "shoulder",
		RotKeys: []anim.RotKey{{Time: 0, Value: math.QuatIdentity()}},
	})
	reach := anim.NewSampledClip("reach", 1)
	reach.AddTrack(anim.Track{
		Bone: "shoulder",
		RotKeys: []anim.RotKey{
			{Time: 0, Value: math.QuatIdentity()},
			{Time: 1, Value: math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.8)},
		},
	})

	machine := anim.NewMachine()
	if _, err := machine.CreateState("rest", rest); err != nil {
		return err
	}
	if _, err := machine.CreateState("reach", reach); err != nil {
		return err
	}
	tr, err := machine.CreateTransition("rest", "reach", cfg.Animation.DefaultFadeTime)
	if err != nil {
		return err
	}
	tr.AddCondition(func(p *anim.Params) bool { return p.Trigger("go") })

	// IK keeps the hand pinned while the shoulder animates.
	solver := ik.NewTwoBone()
	solver.SetPole(math.Vec3{Y: 1})
	ikCtl := ik.NewController()
	ikCtl.SetLogger(logger.Log)
	ikCtl.AddTarget("hand", solver, "hand")
	ikCtl.SetTargetPosition("hand", math.Vec3{X: 1.2, Y: 0.8})

	ctl := anim.NewController(skel)
	ctl.SetLogger(logger.Log)
	ctl.SetMachine(machine)
	ctl.SetPostSolver(ikCtl)
	ctl.SetSpeed(cfg.Animation.PlaybackSpeed)
	if cfg.Animation.StartPaused {
		ctl.Pause()
	}

	machine.SetTrigger("go")
	dt := cfg.Animation.FixedTimestep
	for i := 0; i < 90; i++ {
		ctl.Advance(dt)
	}

	hand := skel.Bone("hand").World.Position
	logger.Info("hand settled",
		zap.Float32("x", hand.X),
		zap.Float32("y", hand.Y),
		zap.Float32("z", hand.Z))

	// A couple of undoable edits on the rig object.
	if err := sess.Do(&renameRig{sess: sess, to: "arm_left"}); err != nil {
		return err
	}
	sess.Checkpoint("after rename", "", 0)
	if err := sess.Do(&renameRig{sess: sess, to: "arm_right"}); err != nil {
		return err
	}
	if err := sess.Undo(); err != nil {
		return err
	}

	fmt.Printf("rig name: %s\n", sess.Registry.Get(rig.ID()).Name)
	fmt.Printf("hand at:  (%.3f, %.3f, %.3f)\n", hand.X, hand.Y, hand.Z)
	fmt.Printf("changes:  %d recorded, versions: %d\n",
		sess.Changes.Len(), sess.Versions.Len())
	return nil
}

// renameRig renames the demo rig through the session's registry.
type renameRig struct {
	sess *session.Session
	from string
	to   string
}

func (c *renameRig) Execute() error {
	o := c.sess.Registry.GetByName("arm")
	if o == nil {
		o = c.sess.Registry.All()[0]
	}
	c.from = o.Name
	c.sess.Registry.Rename(o.ID(), c.to)
	return nil
}

func (c *renameRig) Undo() error {
	o := c.sess.Registry.GetByName(c.to)
	if o != nil {
		c.sess.Registry.Rename(o.ID(), c.from)
	}
	return nil
}

func (c *renameRig) Redo() error { return c.Execute() }

func (c *renameRig) Description() string { return "rename rig to " + c.to }

func (c *renameRig) MemorySize() int { return 64 }

func (c *renameRig) Clone() history.Command {
	cp := *c
	return &cp
}
