package ecs

import "fmt"

// EntityId identifies an entity for its whole lifetime. The lower 32 bits hold
// the slot index and the upper 32 bits hold the slot generation, so an id is
// never reused after its entity is deleted.
type EntityId uint64

// NoEntity is the zero EntityId. Generations start at 1 so it never refers to
// a live entity.
const NoEntity EntityId = 0

// NewEntityId creates an EntityId from a generation and a slot index
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// entityLocation points at the archetype row holding an entity's components.
// A reserved entity has a nil archetype until it is spawned.
type entityLocation struct {
	archetype *Archetype
	row       int
}

// entityAllocator hands out slot indices and tracks their generations.
type entityAllocator struct {
	generations []uint32
	free        []uint32
}

func (a *entityAllocator) alloc() EntityId {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		return NewEntityId(a.generations[index], index)
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 1)
	return NewEntityId(1, index)
}

func (a *entityAllocator) release(id EntityId) {
	index := id.Index()
	a.generations[index]++
	a.free = append(a.free, index)
}

func (a *entityAllocator) current(id EntityId) bool {
	index := id.Index()
	return int(index) < len(a.generations) && a.generations[index] == id.Generation()
}
