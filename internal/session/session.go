// Package session wires the editing substrate together: one session owns the
// undo history, the object registry, the change journal, and the version
// index, and routes every edit through them.
package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelier3d/atelier/internal/changelog"
	"github.com/atelier3d/atelier/internal/config"
	"github.com/atelier3d/atelier/internal/history"
	"github.com/atelier3d/atelier/internal/mem"
	"github.com/atelier3d/atelier/internal/registry"
)

// Recorded is implemented by commands that describe their edit as a
// property-level change record. Executed commands implementing it land in
// the session's change journal.
type Recorded interface {
	ChangeRecord() (objectID uuid.UUID, property, oldValue, newValue string, ok bool)
}

// Session is one open document's editing context. It is single-writer: all
// edits funnel through Do/Undo/Redo on one goroutine.
type Session struct {
	History  *history.History
	Registry *registry.Registry
	Changes  *changelog.Log
	Versions *changelog.VersionIndex

	// Scratch is per-operation transient memory; callers reset it between
	// editing operations.
	Scratch *mem.Arena

	id   uuid.UUID // stamped on every journaled change
	user string

	head uuid.UUID // latest saved version, uuid.Nil before the first save

	log *zap.Logger
}

// New creates a session sized from the config.
func New(cfg *config.Config, log *zap.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		History: history.NewHistory(
			cfg.History.MaxUndoSteps,
			cfg.History.MaxMemoryMB<<20,
		),
		Registry: registry.NewRegistry(cfg.Memory.MaxObjects),
		Changes:  changelog.NewLog(),
		Versions: changelog.NewVersionIndex(cfg.History.MaxVersions),
		Scratch:  mem.NewArena(cfg.Memory.ArenaSlabKB << 10),
		id:       uuid.New(),
		user:     cfg.Session.User,
		log:      log,
	}
	s.Registry.SetLogger(log)
	return s
}

// ID returns the session's identity, stamped on journaled changes.
func (s *Session) ID() uuid.UUID { return s.id }

// User returns the user id stamped on journaled changes.
func (s *Session) User() string { return s.user }

// SetUser changes the user id for subsequent journaled changes.
func (s *Session) SetUser(user string) { s.user = user }

// Do executes the command through the history and journals its change
// record when it carries one.
func (s *Session) Do(c history.Command) error {
	if err := s.History.Do(c); err != nil {
		s.log.Error("edit failed",
			zap.String("command", c.Description()),
			zap.Error(err))
		return err
	}
	s.log.Debug("edit", zap.String("command", c.Description()))

	if rec, ok := c.(Recorded); ok {
		if objectID, property, oldVal, newVal, valid := rec.ChangeRecord(); valid {
			s.Changes.Record(objectID, property, oldVal, newVal, s.user, s.id)
		}
	}
	return nil
}

// Undo reverts the latest edit.
func (s *Session) Undo() error {
	if err := s.History.Undo(); err != nil {
		return err
	}
	s.log.Debug("undo")
	return nil
}

// Redo reapplies the latest undone edit.
func (s *Session) Redo() error {
	if err := s.History.Redo(); err != nil {
		return err
	}
	s.log.Debug("redo")
	return nil
}

// Checkpoint snapshots the history under a name and records a version
// descending from the current head. The new version becomes the head.
func (s *Session) Checkpoint(name, checksum string, size int64) *changelog.Version {
	s.History.Checkpoint(name)
	v := s.Versions.Add(s.head, name, checksum, size)
	s.head = v.ID
	s.log.Info("checkpoint",
		zap.String("name", name),
		zap.String("version", v.ID.String()))
	return v
}

// Restore replays the named checkpoint and rewinds the version head to the
// version whose description matches, when one is still indexed.
func (s *Session) Restore(name string) error {
	if err := s.History.LoadCheckpoint(name); err != nil {
		return err
	}
	for _, v := range s.Versions.All() {
		if v.Description == name {
			s.head = v.ID
			break
		}
	}
	s.log.Info("restore", zap.String("name", name))
	return nil
}

// Head returns the current version head, uuid.Nil before the first
// checkpoint.
func (s *Session) Head() uuid.UUID { return s.head }
