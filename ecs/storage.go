package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Bundle groups components that are commonly spawned together. Spawn and the
// command buffer flatten any argument implementing Bundle.
type Bundle interface {
	Components() []any
}

// Storage is the main ECS storage interface
type Storage struct {
	registry      *ComponentRegistry
	archetypes    map[Mask]*Archetype
	archetypeList []*Archetype
	locations     *intmap.Map[EntityId, entityLocation]
	allocator     entityAllocator
	singletons    map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[Mask]*Archetype),
		locations:  intmap.New[EntityId, entityLocation](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Reserve allocates an entity ID without giving it components. The entity is
// not visible to views until SpawnReserved places it.
func (s *Storage) Reserve() EntityId {
	id := s.allocator.alloc()
	s.locations.Put(id, entityLocation{})
	return id
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.Reserve()
	s.SpawnReserved(id, components...)
	return id
}

// SpawnReserved gives components to an entity obtained from Reserve.
func (s *Storage) SpawnReserved(id EntityId, components ...any) {
	loc, ok := s.locations.Get(id)
	if !ok {
		panic("SpawnReserved: entity " + id.String() + " was not reserved")
	}
	if loc.archetype != nil {
		panic("SpawnReserved: entity " + id.String() + " already spawned")
	}

	components = flattenBundles(components)
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	mask, byId := s.collect(components)
	s.place(id, mask, byId)
}

// Alive reports whether id refers to a spawned or reserved entity.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.locations.Get(id)
	return ok
}

// EntityCount returns the number of spawned entities.
func (s *Storage) EntityCount() int {
	count := 0
	for _, a := range s.archetypeList {
		count += a.Len()
	}
	return count
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}

	if loc.archetype != nil {
		s.removeRow(loc)
	}
	s.locations.Del(id)
	s.allocator.release(id)
}

// AddComponent adds a component to an entity, moving it to a new archetype.
// If the entity already has a component of that type its value is replaced.
func (s *Storage) AddComponent(id EntityId, component any) {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return
	}

	compType := componentType(component)
	if idx := loc.archetype.columnIndex(compType); idx != -1 {
		loc.archetype.columns[idx].Set(loc.row, component)
		return
	}

	cid := s.registry.mustLookup(compType)
	byId := s.rowValues(loc)
	byId[cid] = component
	s.move(id, loc, loc.archetype.mask.with(cid), byId)
}

// RemoveComponent removes a component from an entity. An entity with no
// components left stays alive in the empty archetype.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil || !loc.archetype.HasComponent(compType) {
		return
	}

	cid := s.registry.mustLookup(compType)
	byId := s.rowValues(loc)
	delete(byId, cid)
	s.move(id, loc, loc.archetype.mask.without(cid), byId)
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return nil
	}
	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// ArchetypeOf returns the archetype currently holding the entity.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	loc, _ := s.locations.Get(id)
	return loc.archetype
}

// Archetypes iterates archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypeList {
			if !yield(a) {
				return
			}
		}
	}
}

// collect resolves component types to IDs and builds the archetype mask.
func (s *Storage) collect(components []any) (Mask, map[ComponentId]any) {
	var mask Mask
	byId := make(map[ComponentId]any, len(components))
	for _, comp := range components {
		cid := s.registry.mustLookup(componentType(comp))
		if mask.Has(cid) {
			panic("duplicate component type " + s.registry.types[cid].String())
		}
		mask = mask.with(cid)
		byId[cid] = comp
	}
	return mask, byId
}

func (s *Storage) rowValues(loc entityLocation) map[ComponentId]any {
	byId := make(map[ComponentId]any, len(loc.archetype.ids)+1)
	for i, cid := range loc.archetype.ids {
		byId[cid] = loc.archetype.columns[i].Get(loc.row)
	}
	return byId
}

func (s *Storage) archetypeFor(mask Mask) *Archetype {
	archetype, ok := s.archetypes[mask]
	if !ok {
		archetype = newArchetype(uint32(len(s.archetypeList)+1), mask, s.registry)
		s.archetypes[mask] = archetype
		s.archetypeList = append(s.archetypeList, archetype)
	}
	return archetype
}

func (s *Storage) place(id EntityId, mask Mask, byId map[ComponentId]any) {
	archetype := s.archetypeFor(mask)
	values := make([]any, len(archetype.ids))
	for i, cid := range archetype.ids {
		values[i] = byId[cid]
	}
	row := archetype.push(id, values)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
}

// move copies the row into the archetype for mask before releasing the old
// row, since byId may point into the old columns.
func (s *Storage) move(id EntityId, loc entityLocation, mask Mask, byId map[ComponentId]any) {
	s.place(id, mask, byId)
	s.removeRow(loc)
}

func (s *Storage) removeRow(loc entityLocation) {
	moved, ok := loc.archetype.swapRemove(loc.row)
	if ok {
		s.locations.Put(moved, entityLocation{archetype: loc.archetype, row: loc.row})
	}
}

// componentType returns the value type of a component, dereferencing pointers.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

func flattenBundles(components []any) []any {
	flat := make([]any, 0, len(components))
	for _, comp := range components {
		if bundle, ok := comp.(Bundle); ok {
			flat = append(flat, flattenBundles(bundle.Components())...)
			continue
		}
		flat = append(flat, comp)
	}
	return flat
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to an entity's component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
