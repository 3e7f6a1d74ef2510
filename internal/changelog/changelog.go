// Package changelog records property-level edit history and an index of
// named document versions forming a branching lineage.
package changelog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Change is one recorded property edit on an object, attributed to the user
// and editing session that made it.
type Change struct {
	ID        uuid.UUID
	ObjectID  uuid.UUID
	Property  string
	OldValue  string
	NewValue  string
	Timestamp time.Time
	UserID    string
	SessionID uuid.UUID
}

// Log is an append-only change journal, safe for concurrent use. Entries are
// held in record order.
type Log struct {
	mu      sync.Mutex
	changes []Change
}

// NewLog creates an empty change log.
func NewLog() *Log {
	return &Log{}
}

// Record appends a change attributed to userID and sessionID and returns
// its assigned record.
func (l *Log) Record(objectID uuid.UUID, property, oldValue, newValue, userID string, sessionID uuid.UUID) Change {
	c := Change{
		ID:        uuid.New(),
		ObjectID:  objectID,
		Property:  property,
		OldValue:  oldValue,
		NewValue:  newValue,
		Timestamp: time.Now(),
		UserID:    userID,
		SessionID: sessionID,
	}
	l.mu.Lock()
	l.changes = append(l.changes, c)
	l.mu.Unlock()
	return c
}

// Len returns the number of recorded changes.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.changes)
}

// All returns every change in record order.
func (l *Log) All() []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Change, len(l.changes))
	copy(out, l.changes)
	return out
}

// ByObject returns the changes touching one object, in record order.
func (l *Log) ByObject(objectID uuid.UUID) []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Change
	for _, c := range l.changes {
		if c.ObjectID == objectID {
			out = append(out, c)
		}
	}
	return out
}

// Since returns the changes recorded at or after the cutoff, in record order.
func (l *Log) Since(cutoff time.Time) []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Change
	for _, c := range l.changes {
		if !c.Timestamp.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}

// Clear drops every recorded change.
func (l *Log) Clear() {
	l.mu.Lock()
	l.changes = l.changes[:0]
	l.mu.Unlock()
}
