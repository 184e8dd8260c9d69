package ecs

import (
	"fmt"
	"math/bits"
)

const maxComponentTypes = 256

// Mask is a set of up to 256 component IDs. Every archetype is keyed by the
// mask of the component types it stores.
type Mask [4]uint64

func (m Mask) with(id ComponentId) Mask {
	if int(id) >= maxComponentTypes {
		panic(fmt.Sprintf("component ID %d exceeds maximum (%d)", id, maxComponentTypes))
	}
	m[id>>6] |= 1 << (id & 63)
	return m
}

func (m Mask) without(id ComponentId) Mask {
	if int(id) >= maxComponentTypes {
		return m
	}
	m[id>>6] &^= 1 << (id & 63)
	return m
}

// Has reports whether the component ID is in the mask.
func (m Mask) Has(id ComponentId) bool {
	if int(id) >= maxComponentTypes {
		return false
	}
	return m[id>>6]&(1<<(id&63)) != 0
}

// Contains reports whether every component in sub is also in m.
func (m Mask) Contains(sub Mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// Count returns the number of components in the mask.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}
