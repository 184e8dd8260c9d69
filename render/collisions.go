package render

import (
	"fmt"

	"github.com/plus3/layercams/ecs"
)

// LayerCollision is a pair of active cameras whose render layer sets
// intersect, so each draws the other's content.
type LayerCollision struct {
	A, B   ecs.EntityId
	Shared RenderLayers
	// Equal is set when both cameras have exactly the same layer set.
	Equal bool
}

func (c LayerCollision) String() string {
	kind := "intersect"
	if c.Equal {
		kind = "equal"
	}
	return fmt.Sprintf("cameras %s and %s %s on %s", c.A, c.B, kind, c.Shared)
}

// CheckCameraLayerCollisions compares every pair of active cameras in draw
// order and reports those whose layer sets intersect.
func CheckCameraLayerCollisions(storage *ecs.Storage) []LayerCollision {
	cameras := SortedCameras(storage)
	var out []LayerCollision
	for i := 0; i < len(cameras); i++ {
		for j := i + 1; j < len(cameras); j++ {
			a, b := cameras[i], cameras[j]
			if !a.Layers.Intersects(b.Layers) {
				continue
			}
			out = append(out, LayerCollision{
				A:      a.Entity,
				B:      b.Entity,
				Shared: a.Layers & b.Layers,
				Equal:  a.Layers.Equal(b.Layers),
			})
		}
	}
	return out
}

// OrderAmbiguity is a pair of active cameras drawing to the same target with
// the same Order, so their relative draw order depends on spawn order.
type OrderAmbiguity struct {
	A, B   ecs.EntityId
	Order  int
	Target RenderTarget
}

func (o OrderAmbiguity) String() string {
	return fmt.Sprintf("cameras %s and %s share order %d on the same target", o.A, o.B, o.Order)
}

// CheckCameraOrderAmbiguities reports active cameras that share both a target
// and an Order.
func CheckCameraOrderAmbiguities(storage *ecs.Storage) []OrderAmbiguity {
	cameras := SortedCameras(storage)
	var out []OrderAmbiguity
	for i := 0; i < len(cameras); i++ {
		for j := i + 1; j < len(cameras); j++ {
			a, b := cameras[i].Camera, cameras[j].Camera
			if a.Order != b.Order || a.Target != b.Target {
				continue
			}
			out = append(out, OrderAmbiguity{
				A:      cameras[i].Entity,
				B:      cameras[j].Entity,
				Order:  a.Order,
				Target: a.Target,
			})
		}
	}
	return out
}
