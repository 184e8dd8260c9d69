package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype stores every entity that has exactly one combination of component
// types. Components live in dense columns indexed by row.
type Archetype struct {
	id       uint32
	mask     Mask
	ids      []ComponentId
	types    []reflect.Type
	columns  []iComponentStorage
	entities []EntityId
}

// newArchetype creates an archetype for mask. Columns are ordered by component ID.
func newArchetype(id uint32, mask Mask, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:   id,
		mask: mask,
	}

	for cid := 0; cid < registry.Len(); cid++ {
		if !mask.Has(ComponentId(cid)) {
			continue
		}
		a.ids = append(a.ids, ComponentId(cid))
		a.types = append(a.types, registry.types[cid])
		a.columns = append(a.columns, registry.factories[cid]())
	}

	return a
}

// columnIndex returns the column holding compType, or -1.
func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// push appends a row. values must be ordered like a.types.
func (a *Archetype) push(entity EntityId, values []any) int {
	for i, col := range a.columns {
		col.Append(values[i])
	}
	a.entities = append(a.entities, entity)
	return len(a.entities) - 1
}

// swapRemove deletes row, moving the last row into its place. It returns the
// entity that moved, if any.
func (a *Archetype) swapRemove(row int) (EntityId, bool) {
	last := len(a.entities) - 1
	for _, col := range a.columns {
		col.SwapRemove(row)
	}

	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	if row == last {
		return NoEntity, false
	}
	return moved, true
}

// GetComponent returns a pointer to the component of the given type at row
func (a *Archetype) GetComponent(row int, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].Get(row)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier. IDs are assigned in creation order.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Mask returns the component mask the archetype is keyed by.
func (a *Archetype) Mask() Mask {
	return a.mask
}

// Types returns the component types for this archetype, ordered by component ID
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Iter returns an iterator over the entities in this archetype in row order
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if !yield(id) {
				return
			}
		}
	}
}
