// Package history implements undoable edit commands: an undo/redo stack with
// step and memory caps, command merging for coalescing rapid edits, and named
// checkpoints that can rebuild the document state.
//
// The package is not safe for concurrent use; edits are serialized by the
// session that owns the history.
package history

// Command is a single reversible edit. Execute applies it, Undo reverts it,
// and Redo reapplies it after an undo. MemorySize is the command's retained
// footprint in bytes, used for the history's memory cap. Clone must return a
// deep copy that replays independently of the original.
type Command interface {
	Execute() error
	Undo() error
	Redo() error
	Description() string
	MemorySize() int
	Clone() Command
}

// Mergeable is implemented by commands that can absorb an immediately
// following command, collapsing bursts of small edits into one undo step.
type Mergeable interface {
	Command

	// CanMergeWith reports whether next can be folded into this command.
	CanMergeWith(next Command) bool

	// MergeWith folds next into this command. next has already executed.
	MergeWith(next Command)
}

// Compound groups commands into one undo step. Execute runs them in order;
// Undo reverts them in reverse order.
type Compound struct {
	description string
	commands    []Command
}

// NewCompound creates an empty compound with a description.
func NewCompound(description string) *Compound {
	return &Compound{description: description}
}

// Add appends a sub-command. Returns the compound for chaining.
func (c *Compound) Add(cmd Command) *Compound {
	c.commands = append(c.commands, cmd)
	return c
}

// Len returns the number of grouped commands.
func (c *Compound) Len() int { return len(c.commands) }

// Execute runs the sub-commands in order, stopping and unwinding the already
// executed prefix on the first failure.
func (c *Compound) Execute() error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				c.commands[j].Undo()
			}
			return err
		}
	}
	return nil
}

// Undo reverts the sub-commands in reverse order.
func (c *Compound) Undo() error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Redo reapplies the sub-commands in order.
func (c *Compound) Redo() error {
	for _, cmd := range c.commands {
		if err := cmd.Redo(); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the compound's description.
func (c *Compound) Description() string { return c.description }

// MemorySize sums the grouped commands' footprints.
func (c *Compound) MemorySize() int {
	total := 0
	for _, cmd := range c.commands {
		total += cmd.MemorySize()
	}
	return total
}

// Clone deep-copies the compound and every grouped command.
func (c *Compound) Clone() Command {
	out := &Compound{description: c.description}
	out.commands = make([]Command, len(c.commands))
	for i, cmd := range c.commands {
		out.commands[i] = cmd.Clone()
	}
	return out
}
