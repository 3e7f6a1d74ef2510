package changelog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Version is one saved document snapshot in the lineage tree. ParentID is
// uuid.Nil for a lineage root.
type Version struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	ParentID    uuid.UUID
	ChildIDs    []uuid.UUID
	Checksum    string
	Size        int64
}

// VersionIndex tracks saved versions and their parent/child lineage, capped
// at maxVersions with oldest-first eviction. Safe for concurrent use.
type VersionIndex struct {
	mu sync.Mutex

	byID  map[uuid.UUID]*Version
	order []uuid.UUID

	maxVersions int
}

// NewVersionIndex creates an index holding at most maxVersions entries;
// maxVersions <= 0 means unlimited.
func NewVersionIndex(maxVersions int) *VersionIndex {
	return &VersionIndex{
		byID:        make(map[uuid.UUID]*Version),
		maxVersions: maxVersions,
	}
}

// Add records a version under a parent and returns it. parentID may be
// uuid.Nil for a root; a known parent gains the new version as a child.
func (x *VersionIndex) Add(parentID uuid.UUID, description, checksum string, size int64) *Version {
	v := &Version{
		ID:          uuid.New(),
		Description: description,
		Timestamp:   time.Now(),
		ParentID:    parentID,
		Checksum:    checksum,
		Size:        size,
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if parent, ok := x.byID[parentID]; ok {
		parent.ChildIDs = append(parent.ChildIDs, v.ID)
	}
	x.byID[v.ID] = v
	x.order = append(x.order, v.ID)

	if x.maxVersions > 0 {
		for len(x.order) > x.maxVersions {
			oldest := x.order[0]
			x.order = x.order[1:]
			delete(x.byID, oldest)
		}
	}
	return v
}

// Get returns the version with the identity, or nil.
func (x *VersionIndex) Get(id uuid.UUID) *Version {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.byID[id]
}

// Len returns the number of versions held.
func (x *VersionIndex) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.order)
}

// All returns the held versions oldest first.
func (x *VersionIndex) All() []*Version {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]*Version, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.byID[id])
	}
	return out
}

// Branch returns the subtree rooted at id in pre-order. Children evicted
// from the index are skipped; their own descendants are unreachable and
// therefore absent too.
func (x *VersionIndex) Branch(id uuid.UUID) []*Version {
	x.mu.Lock()
	defer x.mu.Unlock()

	var out []*Version
	var walk func(uuid.UUID)
	walk = func(cur uuid.UUID) {
		v, ok := x.byID[cur]
		if !ok {
			return
		}
		out = append(out, v)
		for _, child := range v.ChildIDs {
			walk(child)
		}
	}
	walk(id)
	return out
}
