package anim

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/atelier3d/atelier/pkg/math"
)

type recordingSolver struct {
	calls int
	tipX  float32
}

func (r *recordingSolver) SolveAll(s *Skeleton) {
	r.calls++
	r.tipX = s.Bone("b").World.Position.X
}

func controllerFixture(t *testing.T) (*Skeleton, *Controller) {
	t.Helper()
	s := NewSkeleton()
	s.CreateBone("root", "")
	s.CreateBone("b", "root")
	s.Update()

	m := NewMachine()
	clip := NewSampledClip("slide", 1)
	clip.AddTrack(Track{
		Bone: "b",
		PosKeys: []VecKey{
			{Time: 0, Value: math.Vec3{}},
			{Time: 1, Value: math.Vec3{X: 1}},
		},
	})
	if _, err := m.CreateState("slide", clip); err != nil {
		t.Fatal(err)
	}

	c := NewController(s)
	c.SetMachine(m)
	return s, c
}

func TestControllerAdvanceDrivesSkeleton(t *testing.T) {
	s, c := controllerFixture(t)
	c.Advance(0.5)

	if got := s.Bone("b").World.Position.X; math32.Abs(got-0.5) > tol {
		t.Errorf("bone world X = %v, want 0.5", got)
	}
}

func TestControllerPostSolverSeesFreshWorld(t *testing.T) {
	_, c := controllerFixture(t)
	rec := &recordingSolver{}
	c.SetPostSolver(rec)

	c.Advance(0.25)
	if rec.calls != 1 {
		t.Fatalf("post solver ran %d times, want 1", rec.calls)
	}
	if math32.Abs(rec.tipX-0.25) > tol {
		t.Errorf("post solver saw X = %v, want 0.25", rec.tipX)
	}
}

func TestControllerPauseAndSpeed(t *testing.T) {
	s, c := controllerFixture(t)

	c.Pause()
	c.Advance(0.5)
	if got := s.Bone("b").World.Position.X; got != 0 {
		t.Errorf("bone moved while paused: X = %v", got)
	}
	if !c.Paused() {
		t.Error("controller not reporting paused")
	}

	c.Resume()
	c.SetSpeed(2)
	c.Advance(0.25)
	if got := s.Bone("b").World.Position.X; math32.Abs(got-0.5) > tol {
		t.Errorf("bone X = %v, want 0.5 at double speed", got)
	}

	c.SetSpeed(-1)
	if c.Speed() != 0 {
		t.Errorf("negative speed = %v, want 0", c.Speed())
	}
}

func TestControllerPlay(t *testing.T) {
	_, c := controllerFixture(t)
	c.Machine().CreateState("other", nil)

	if err := c.Play("other"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if c.Machine().Current().Name != "other" {
		t.Errorf("current = %q, want other", c.Machine().Current().Name)
	}
	if err := c.Play("missing"); err == nil {
		t.Error("expected error for unknown state")
	}

	bare := NewController(NewSkeleton())
	if err := bare.Play("x"); err == nil {
		t.Error("expected error for a name with no state or clip")
	}
}

func TestControllerPlayRegisteredClip(t *testing.T) {
	s := NewSkeleton()
	s.CreateBone("root", "")
	s.CreateBone("b", "root")
	s.Update()

	c := NewController(s)
	clip := NewSampledClip("bounce", 1)
	clip.AddTrack(Track{
		Bone: "b",
		PosKeys: []VecKey{
			{Time: 0, Value: math.Vec3{}},
			{Time: 1, Value: math.Vec3{Y: 1}},
		},
	})
	c.AddClip(clip)
	if c.Clip("bounce") == nil {
		t.Fatal("clip not registered")
	}

	if err := c.Play("bounce"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	c.Advance(0.5)
	if got := s.Bone("b").World.Position.Y; math32.Abs(got-0.5) > tol {
		t.Errorf("bone Y = %v, want 0.5", got)
	}
}
