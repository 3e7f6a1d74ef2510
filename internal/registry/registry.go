package registry

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry owns every live scene object. All operations are safe for
// concurrent use; iteration orders follow registration order. Destroy is the
// only way an object leaves the registry.
type Registry struct {
	mu sync.Mutex

	byID   map[uuid.UUID]*Object
	byName map[string]*Object
	order  []*Object

	maxObjects int

	log *zap.Logger
}

// NewRegistry creates a registry capped at maxObjects live objects;
// maxObjects <= 0 means unlimited.
func NewRegistry(maxObjects int) *Registry {
	return &Registry{
		byID:       make(map[uuid.UUID]*Object),
		byName:     make(map[string]*Object),
		maxObjects: maxObjects,
		log:        zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger.
func (r *Registry) SetLogger(l *zap.Logger) {
	if l != nil {
		r.log = l
	}
}

// Create registers a new object of the given type. An empty name gets an
// auto-generated one from the type and the identity prefix. A name collision
// rebinds the name index to the new object; the older object stays alive and
// reachable by ID. Returns nil when the registry is full.
func (r *Registry) Create(typ, name string) *Object {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxObjects > 0 && len(r.order) >= r.maxObjects {
		r.log.Warn("registry full",
			zap.Int("max", r.maxObjects),
			zap.String("type", typ))
		return nil
	}

	o := newObject(typ)
	if name == "" {
		name = typ + "_" + o.id.String()[:8]
	}
	o.Name = name

	r.byID[o.id] = o
	r.byName[name] = o
	r.order = append(r.order, o)
	return o
}

// Get returns the object with the identity, or nil.
func (r *Registry) Get(id uuid.UUID) *Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

// GetByName returns the object bound to the name, or nil.
func (r *Registry) GetByName(name string) *Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[name]
}

// Rename rebinds an object's name; last writer wins in the name index.
// Unknown identities report false.
func (r *Registry) Rename(id uuid.UUID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return false
	}
	if r.byName[o.Name] == o {
		delete(r.byName, o.Name)
	}
	o.Name = name
	r.byName[name] = o
	return true
}

// Destroy removes the object from every index. Reports whether it was live.
func (r *Registry) Destroy(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	if r.byName[o.Name] == o {
		delete(r.byName, o.Name)
	}
	for i, cand := range r.order {
		if cand == o {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Count returns the number of live objects.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// All returns the live objects in registration order.
func (r *Registry) All() []*Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Object, len(r.order))
	copy(out, r.order)
	return out
}

// ByType returns objects of the type in registration order.
func (r *Registry) ByType(typ string) []*Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Object
	for _, o := range r.order {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	return out
}

// ByCategory returns objects in the category in registration order.
func (r *Registry) ByCategory(category string) []*Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Object
	for _, o := range r.order {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// UpdateAll invokes every active object's update hook in registration order.
// Hooks run outside the lock so they may call back into the registry.
func (r *Registry) UpdateAll(dt float32) {
	for _, o := range r.All() {
		if o.Active && o.OnUpdate != nil {
			o.OnUpdate(o, dt)
		}
	}
}
