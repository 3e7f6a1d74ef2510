// Package registry implements the scene object registry: identity, naming,
// type and category lookup, and a typed component bag per object.
package registry

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// UpdateFunc is an object's per-frame hook.
type UpdateFunc func(o *Object, dt float32)

// Object is one registered scene entity. Identity is a UUID assigned at
// registration and never reused; Name is mutable and unique-per-lookup only
// in the registry's name index. Components hang off the object keyed by
// their Go type, one value per type. The component bag is safe for
// concurrent use.
type Object struct {
	id       uuid.UUID
	Name     string
	Type     string
	Category string
	Active   bool

	OnUpdate UpdateFunc

	mu         sync.Mutex
	components map[reflect.Type]any
}

func newObject(typ string) *Object {
	return &Object{
		id:         uuid.New(),
		Type:       typ,
		Active:     true,
		components: make(map[reflect.Type]any),
	}
}

// ID returns the object's immutable identity.
func (o *Object) ID() uuid.UUID { return o.id }

// ComponentCount returns the number of attached components.
func (o *Object) ComponentCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.components)
}

// SetComponent attaches v to the object, replacing any existing component of
// the same type.
func SetComponent[T any](o *Object, v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.components[reflect.TypeOf((*T)(nil)).Elem()] = v
}

// Component returns the object's component of type T.
func Component[T any](o *Object) (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.components[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// RemoveComponent detaches the component of type T, reporting whether one
// was attached.
func RemoveComponent[T any](o *Object) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := o.components[key]; !ok {
		return false
	}
	delete(o.components, key)
	return true
}
