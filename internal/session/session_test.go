package session

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier3d/atelier/internal/config"
	"github.com/atelier3d/atelier/internal/history"
	"github.com/atelier3d/atelier/internal/registry"
)

// renameCmd renames a registry object and reports the edit as a change
// record.
type renameCmd struct {
	reg  *registry.Registry
	id   uuid.UUID
	from string
	to   string
}

func (c *renameCmd) Execute() error {
	o := c.reg.Get(c.id)
	if o == nil {
		return fmt.Errorf("object %s not found", c.id)
	}
	c.from = o.Name
	c.reg.Rename(c.id, c.to)
	return nil
}
func (c *renameCmd) Undo() error {
	c.reg.Rename(c.id, c.from)
	return nil
}
func (c *renameCmd) Redo() error         { return c.Execute() }
func (c *renameCmd) Description() string { return "rename to " + c.to }
func (c *renameCmd) MemorySize() int     { return 64 }
func (c *renameCmd) Clone() history.Command {
	cp := *c
	return &cp
}
func (c *renameCmd) ChangeRecord() (uuid.UUID, string, string, string, bool) {
	return c.id, "name", c.from, c.to, true
}

func newTestSession() *Session {
	return New(config.Default(), nil)
}

func TestDoRoutesThroughHistoryAndJournal(t *testing.T) {
	s := newTestSession()
	o := s.Registry.Create("mesh", "cube")
	require.NotNil(t, o)

	err := s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "box"})
	require.NoError(t, err)

	assert.Equal(t, "box", s.Registry.Get(o.ID()).Name)
	assert.True(t, s.History.CanUndo())

	changes := s.Changes.ByObject(o.ID())
	require.Len(t, changes, 1)
	assert.Equal(t, "name", changes[0].Property)
	assert.Equal(t, "cube", changes[0].OldValue)
	assert.Equal(t, "box", changes[0].NewValue)
}

func TestDoStampsUserAndSession(t *testing.T) {
	cfg := config.Default()
	cfg.Session.User = "ana"
	s := New(cfg, nil)
	require.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, "ana", s.User())

	o := s.Registry.Create("mesh", "cube")
	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "box"}))

	changes := s.Changes.ByObject(o.ID())
	require.Len(t, changes, 1)
	assert.Equal(t, "ana", changes[0].UserID)
	assert.Equal(t, s.ID(), changes[0].SessionID)

	// A rebound user id attributes later edits without touching old ones.
	s.SetUser("ben")
	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "crate"}))
	changes = s.Changes.ByObject(o.ID())
	require.Len(t, changes, 2)
	assert.Equal(t, "ana", changes[0].UserID)
	assert.Equal(t, "ben", changes[1].UserID)
	assert.Equal(t, s.ID(), changes[1].SessionID)
}

func TestDoFailureJournalsNothing(t *testing.T) {
	s := newTestSession()
	err := s.Do(&renameCmd{reg: s.Registry, id: uuid.New(), to: "x"})
	require.Error(t, err)
	assert.Zero(t, s.Changes.Len())
	assert.False(t, s.History.CanUndo())
}

func TestUndoRedoThroughSession(t *testing.T) {
	s := newTestSession()
	o := s.Registry.Create("mesh", "cube")
	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "box"}))

	require.NoError(t, s.Undo())
	assert.Equal(t, "cube", s.Registry.Get(o.ID()).Name)

	require.NoError(t, s.Redo())
	assert.Equal(t, "box", s.Registry.Get(o.ID()).Name)

	require.NoError(t, s.Undo())
	assert.Error(t, s.Undo(), "second undo on empty stack must fail")
}

func TestCheckpointAdvancesHead(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, uuid.Nil, s.Head())

	v1 := s.Checkpoint("first", "aaa", 100)
	assert.Equal(t, v1.ID, s.Head())
	assert.Equal(t, uuid.Nil, v1.ParentID)

	v2 := s.Checkpoint("second", "bbb", 120)
	assert.Equal(t, v2.ID, s.Head())
	assert.Equal(t, v1.ID, v2.ParentID)

	branch := s.Versions.Branch(v1.ID)
	require.Len(t, branch, 2)
}

func TestRestoreReplaysCheckpoint(t *testing.T) {
	s := newTestSession()
	o := s.Registry.Create("mesh", "cube")
	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "box"}))
	v := s.Checkpoint("named", "ccc", 10)

	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "crate"}))
	assert.Equal(t, "crate", s.Registry.Get(o.ID()).Name)

	require.NoError(t, s.Restore("named"))
	assert.Equal(t, "box", s.Registry.Get(o.ID()).Name)
	assert.Equal(t, v.ID, s.Head())

	assert.Error(t, s.Restore("missing"))
}

func TestScratchArenaSizedFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Memory.ArenaSlabKB = 4
	s := New(cfg, nil)

	require.NotNil(t, s.Scratch)
	assert.Equal(t, 4<<10, s.Scratch.Capacity())

	buf := s.Scratch.Alloc(128, 8)
	assert.Len(t, buf, 128)
	s.Scratch.Reset()
	assert.Zero(t, s.Scratch.Used())
}

func TestZeroUndoConfig(t *testing.T) {
	cfg := config.Default()
	cfg.History.MaxUndoSteps = 0
	s := New(cfg, nil)

	o := s.Registry.Create("mesh", "cube")
	require.NoError(t, s.Do(&renameCmd{reg: s.Registry, id: o.ID(), to: "box"}))
	assert.Equal(t, "box", s.Registry.Get(o.ID()).Name)
	assert.False(t, s.History.CanUndo())
}
