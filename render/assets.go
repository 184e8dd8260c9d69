package render

import (
	"fmt"
	"iter"
)

// Handle refers to an asset stored in Assets[T]. The zero Handle refers to nothing.
type Handle[T any] struct {
	id uint32
}

// IsValid reports whether the handle was returned by Assets.Add.
func (h Handle[T]) IsValid() bool {
	return h.id != 0
}

func (h Handle[T]) ID() uint32 {
	return h.id
}

func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle(%d)", h.id)
}

// Assets owns every asset of one type. It is stored as an ECS singleton.
type Assets[T any] struct {
	items []*T
}

// Add stores an asset and returns its handle.
func (a *Assets[T]) Add(asset T) Handle[T] {
	a.items = append(a.items, &asset)
	return Handle[T]{id: uint32(len(a.items))}
}

// Get returns the asset for h, or nil for an invalid or unknown handle.
func (a *Assets[T]) Get(h Handle[T]) *T {
	if h.id == 0 || int(h.id) > len(a.items) {
		return nil
	}
	return a.items[h.id-1]
}

func (a *Assets[T]) Len() int {
	return len(a.items)
}

// All iterates assets in insertion order.
func (a *Assets[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for i, item := range a.items {
			if !yield(Handle[T]{id: uint32(i + 1)}, item) {
				return
			}
		}
	}
}
