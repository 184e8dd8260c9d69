package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each
// component type. Named fields can be marked as optional using the
// `ecs:"optional"` struct tag. A field of type EntityId receives the entity's ID.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	required    Mask

	entityField  bool
	entityOffset uintptr
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			if v.entityField {
				panic("View struct may only have one EntityId field")
			}
			v.entityField = true
			v.entityOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		componentType := fieldType.Elem()
		cid := storage.registry.mustLookup(componentType)

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		v.types = append(v.types, componentType)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.required = v.required.with(cid)
		}
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.locations.Get(id)
	if !ok || loc.archetype == nil || !v.matchesArchetype(loc.archetype) {
		return false
	}

	indices := v.buildStorageIndices(loc.archetype)
	return v.populateResult(unsafe.Pointer(ptr), loc.archetype, id, loc.row, indices)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// matchesArchetype checks if an archetype contains all the required component types for this view
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	return archetype.mask.Contains(v.required)
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.types))
	for i, componentType := range v.types {
		storageIndices[i] = archetype.columnIndex(componentType)
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, id EntityId, row int, storageIndices []int) bool {
	if v.entityField {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + v.entityOffset)) = id
	}

	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		if storageIdx == -1 {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.columns[storageIdx].Get(row)
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}
	return true
}

// iterArchetype yields every row of one matching archetype.
func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for row, id := range archetype.entities {
			if !v.populateResult(resultPtr, archetype, id, row, storageIndices) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities that have all the required components for this view.
// Archetypes are visited in creation order and rows in storage order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypeList {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the view.
func (v *View[T]) Count() int {
	count := 0
	for _, archetype := range v.storage.archetypeList {
		if v.matchesArchetype(archetype) {
			count += archetype.Len()
		}
	}
	return count
}

// Spawn creates a new entity with components extracted from the view struct.
// Nil optional fields are skipped.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
