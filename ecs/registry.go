package ecs

import (
	"reflect"
)

// ComponentId is the dense index a ComponentRegistry assigns to a component type.
type ComponentId uint16

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentId
	types     []reflect.Type
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry. The hierarchy
// components Parent and Children are always registered.
func NewComponentRegistry() *ComponentRegistry {
	r := &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentId),
	}
	RegisterComponent[Parent](r)
	RegisterComponent[Children](r)
	return r
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice returns the existing ID.
func RegisterComponent[T any](r *ComponentRegistry) ComponentId {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= maxComponentTypes {
		panic("too many component types registered")
	}

	id := ComponentId(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iComponentStorage {
		return &column[T]{}
	})
	return id
}

// Lookup returns the ID of a registered component type.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentId, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the component type registered under id.
func (r *ComponentRegistry) Type(id ComponentId) reflect.Type {
	return r.types[id]
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

func (r *ComponentRegistry) mustLookup(t reflect.Type) ComponentId {
	id, ok := r.ids[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return id
}

// iComponentStorage is a type-erased dense column of one component type.
type iComponentStorage interface {
	Append(item any) int
	Get(row int) any
	Set(row int, item any)
	SwapRemove(row int)
	Len() int
}

// column stores the components of one type for an archetype, one per row.
// Pointers returned by Get stay valid until the next structural change to
// the owning archetype.
type column[T any] struct {
	items []T
}

func unwrap[T any](item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	val, ok := item.(T)
	return val, ok
}

// Append adds a component and returns its row.
func (c *column[T]) Append(item any) int {
	val, ok := unwrap[T](item)
	if !ok {
		panic("column: component type mismatch")
	}
	c.items = append(c.items, val)
	return len(c.items) - 1
}

// Get returns a pointer to the component at the given row.
func (c *column[T]) Get(row int) any {
	if row < 0 || row >= len(c.items) {
		return nil
	}
	return &c.items[row]
}

// Set overwrites the component at the given row.
func (c *column[T]) Set(row int, item any) {
	val, ok := unwrap[T](item)
	if !ok {
		panic("column: component type mismatch")
	}
	c.items[row] = val
}

// SwapRemove moves the last row into row and shrinks the column.
func (c *column[T]) SwapRemove(row int) {
	last := len(c.items) - 1
	c.items[row] = c.items[last]
	var zero T
	c.items[last] = zero
	c.items = c.items[:last]
}

func (c *column[T]) Len() int {
	return len(c.items)
}
