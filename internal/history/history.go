package history

import (
	"errors"
	"fmt"
	"sort"
)

// Stack boundary errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Default caps applied by NewHistory when a limit is negative.
const (
	DefaultMaxSteps  = 100
	DefaultMaxMemory = 64 << 20 // bytes
)

// History is the undo/redo engine. Executed commands land on the undo stack;
// undoing moves them to the redo stack; any new edit clears the redo stack.
// Both a step cap and a byte cap bound the undo stack, evicting the oldest
// entries first. maxSteps == 0 keeps no undo state at all.
type History struct {
	undo []Command
	redo []Command

	maxSteps  int
	maxMemory int

	checkpoints map[string][]Command
}

// NewHistory creates a history with the given caps. Negative values select
// the defaults.
func NewHistory(maxSteps, maxMemory int) *History {
	if maxSteps < 0 {
		maxSteps = DefaultMaxSteps
	}
	if maxMemory < 0 {
		maxMemory = DefaultMaxMemory
	}
	return &History{
		maxSteps:    maxSteps,
		maxMemory:   maxMemory,
		checkpoints: make(map[string][]Command),
	}
}

// Do executes the command and records it. When the previous undo entry can
// merge with it, the entries coalesce into one step. A failed Execute records
// nothing and leaves both stacks untouched.
func (h *History) Do(c Command) error {
	if c == nil {
		return errors.New("nil command")
	}
	if err := c.Execute(); err != nil {
		return err
	}

	// Dropping the backing array lets cleared redo commands be collected.
	h.redo = nil

	if n := len(h.undo); n > 0 {
		if m, ok := h.undo[n-1].(Mergeable); ok && m.CanMergeWith(c) {
			m.MergeWith(c)
			h.enforceCaps()
			return nil
		}
	}

	h.undo = append(h.undo, c)
	h.enforceCaps()
	return nil
}

// Undo reverts the most recent command and moves it to the redo stack.
func (h *History) Undo() error {
	n := len(h.undo)
	if n == 0 {
		return ErrNothingToUndo
	}
	c := h.undo[n-1]
	if err := c.Undo(); err != nil {
		return fmt.Errorf("undo %q: %w", c.Description(), err)
	}
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, c)
	return nil
}

// Redo reapplies the most recently undone command.
func (h *History) Redo() error {
	n := len(h.redo)
	if n == 0 {
		return ErrNothingToRedo
	}
	c := h.redo[n-1]
	if err := c.Redo(); err != nil {
		return fmt.Errorf("redo %q: %w", c.Description(), err)
	}
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, c)
	return nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of undo steps held.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redo steps held.
func (h *History) RedoDepth() int { return len(h.redo) }

// Descriptions returns the undo stack's descriptions, oldest first.
func (h *History) Descriptions() []string {
	out := make([]string, len(h.undo))
	for i, c := range h.undo {
		out[i] = c.Description()
	}
	return out
}

// MemoryUsage returns the undo stack's total footprint in bytes.
func (h *History) MemoryUsage() int {
	total := 0
	for _, c := range h.undo {
		total += c.MemorySize()
	}
	return total
}

// Clear drops both stacks. Checkpoints survive.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Checkpoint snapshots the current undo stack under a name, replacing any
// previous checkpoint with that name. The snapshot holds clones, so later
// merges and evictions leave it intact.
func (h *History) Checkpoint(name string) {
	snap := make([]Command, len(h.undo))
	for i, c := range h.undo {
		snap[i] = c.Clone()
	}
	h.checkpoints[name] = snap
}

// LoadCheckpoint rebuilds the state recorded under the name: both stacks are
// cleared, then fresh clones of the snapshot replay in order and become the
// new undo stack.
func (h *History) LoadCheckpoint(name string) error {
	snap, ok := h.checkpoints[name]
	if !ok {
		return fmt.Errorf("checkpoint %q not found", name)
	}

	h.Clear()
	for _, c := range snap {
		replay := c.Clone()
		if err := replay.Execute(); err != nil {
			return fmt.Errorf("replay %q: %w", replay.Description(), err)
		}
		h.undo = append(h.undo, replay)
	}
	h.enforceCaps()
	return nil
}

// DeleteCheckpoint removes a named checkpoint. Unknown names are a no-op.
func (h *History) DeleteCheckpoint(name string) {
	delete(h.checkpoints, name)
}

// Checkpoints returns the checkpoint names in sorted order.
func (h *History) Checkpoints() []string {
	out := make([]string, 0, len(h.checkpoints))
	for name := range h.checkpoints {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// enforceCaps evicts from the bottom of the undo stack until both the step
// and byte limits hold. Evicted commands can no longer be undone.
func (h *History) enforceCaps() {
	for len(h.undo) > h.maxSteps {
		h.undo = h.undo[1:]
	}
	if h.maxMemory <= 0 {
		return
	}
	for len(h.undo) > 1 && h.MemoryUsage() > h.maxMemory {
		h.undo = h.undo[1:]
	}
}
