package ecs

import "iter"

// Parent points from a child entity to its parent.
type Parent struct {
	Entity EntityId
}

// Children lists a parent's direct children in spawn order.
type Children struct {
	Entities []EntityId
}

// ParentOf returns the parent of id, or NoEntity for roots.
func ParentOf(storage *Storage, id EntityId) EntityId {
	if p := ReadComponent[Parent](storage, id); p != nil {
		return p.Entity
	}
	return NoEntity
}

// ChildrenOf returns the direct children of id.
func ChildrenOf(storage *Storage, id EntityId) []EntityId {
	if c := ReadComponent[Children](storage, id); c != nil {
		return c.Entities
	}
	return nil
}

// Descendants walks the hierarchy below root depth-first, parents before
// their children. root itself is not yielded.
func Descendants(storage *Storage, root EntityId) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		stack := append([]EntityId(nil), reversed(ChildrenOf(storage, root))...)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			stack = append(stack, reversed(ChildrenOf(storage, id))...)
		}
	}
}

// Root follows Parent links up to the top of id's hierarchy.
func Root(storage *Storage, id EntityId) EntityId {
	for {
		parent := ParentOf(storage, id)
		if parent == NoEntity {
			return id
		}
		id = parent
	}
}

func reversed(ids []EntityId) []EntityId {
	out := make([]EntityId, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
