package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for engine resources
// such as asset registries, window state or input state.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If initializer is provided and the singleton doesn't exist in storage,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		entry = storage.addSingleton(componentType, reflect.ValueOf(&value).Elem())
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init initializes the Singleton with a storage reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// updateCache refreshes the cached pointer from storage
func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value in place so existing accessors observe the new value.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if entry := s.getSingletonEntry(v.Type()); entry != nil {
		entry.value.Elem().Set(v)
		return
	}
	s.addSingleton(v.Type(), v)
}

func (s *Storage) addSingleton(t reflect.Type, v reflect.Value) *singletonEntry {
	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	entry := &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
	s.singletons[t] = entry
	return entry
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// GetSingleton returns a typed pointer to a singleton, or nil.
func GetSingleton[T any](storage *Storage) *T {
	entry := storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}
