package render

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/plus3/layercams/ecs"
)

// TotalLayers is the number of distinct render layers.
const TotalLayers = 64

// RenderLayers is the set of layers an entity belongs to. A camera sees an
// entity only when their sets intersect. Entities without the component are
// on layer 0 only, see LayersOrDefault.
type RenderLayers uint64

// DefaultLayers is the set assumed for entities without RenderLayers.
const DefaultLayers RenderLayers = 1

// Layer returns the set containing only layer n. It panics if n is out of range.
func Layer(n int) RenderLayers {
	checkLayer(n)
	return RenderLayers(1) << n
}

// Layers returns the set containing every given layer.
func Layers(ns ...int) RenderLayers {
	var l RenderLayers
	for _, n := range ns {
		l = l.With(n)
	}
	return l
}

func (l RenderLayers) With(n int) RenderLayers {
	checkLayer(n)
	return l | RenderLayers(1)<<n
}

func (l RenderLayers) Without(n int) RenderLayers {
	checkLayer(n)
	return l &^ (RenderLayers(1) << n)
}

func (l RenderLayers) Has(n int) bool {
	return n >= 0 && n < TotalLayers && l&(RenderLayers(1)<<n) != 0
}

// Intersects reports whether the two sets share at least one layer.
func (l RenderLayers) Intersects(o RenderLayers) bool {
	return l&o != 0
}

// Equal reports whether both sets contain exactly the same layers.
func (l RenderLayers) Equal(o RenderLayers) bool {
	return l == o
}

// Indices lists the layers in ascending order.
func (l RenderLayers) Indices() []int {
	out := make([]int, 0, bits.OnesCount64(uint64(l)))
	for v := uint64(l); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}
	return out
}

func (l RenderLayers) String() string {
	parts := make([]string, 0, bits.OnesCount64(uint64(l)))
	for _, n := range l.Indices() {
		parts = append(parts, strconv.Itoa(n))
	}
	return "RenderLayers(" + strings.Join(parts, ", ") + ")"
}

// LayersOrDefault returns the entity's RenderLayers, or DefaultLayers when it has none.
func LayersOrDefault(storage *ecs.Storage, id ecs.EntityId) RenderLayers {
	return layersOr(ecs.ReadComponent[RenderLayers](storage, id))
}

func layersOr(l *RenderLayers) RenderLayers {
	if l == nil {
		return DefaultLayers
	}
	return *l
}

func checkLayer(n int) {
	if n < 0 || n >= TotalLayers {
		panic(fmt.Sprintf("render: layer %d out of range [0, %d)", n, TotalLayers))
	}
}
