package ui

import (
	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
)

// TargetSystem resolves the camera of every UI node into its ComputedTarget.
// A node uses its own TargetCamera, else its nearest ancestor's, else the
// highest-order active camera that draws to the window. The node inherits
// that camera's render layers.
type TargetSystem struct {
	Nodes ecs.Query[struct {
		Id ecs.EntityId
		*Node
		*ComputedTarget
	}]
	Window ecs.Singleton[render.Window]
	Images ecs.Singleton[render.Assets[render.Image]]
}

func (s *TargetSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	fallback := DefaultCamera(storage)

	for item := range s.Nodes.Values() {
		camera := ResolveTargetCamera(storage, item.Id)
		if camera == ecs.NoEntity {
			camera = fallback
		}
		*item.ComputedTarget = s.compute(storage, camera)
	}
}

func (s *TargetSystem) compute(storage *ecs.Storage, camera ecs.EntityId) ComputedTarget {
	cam := ecs.ReadComponent[render.Camera](storage, camera)
	if cam == nil {
		return ComputedTarget{}
	}
	w, h := cam.TargetSize(s.Window.Get(), s.Images.Get())
	return ComputedTarget{
		Camera: camera,
		Layers: render.LayersOrDefault(storage, camera),
		Window: cam.Target.IsWindow(),
		Width:  w,
		Height: h,
	}
}

// ResolveTargetCamera walks from id up the hierarchy and returns the first
// TargetCamera found, or NoEntity.
func ResolveTargetCamera(storage *ecs.Storage, id ecs.EntityId) ecs.EntityId {
	for id != ecs.NoEntity {
		if target := ecs.ReadComponent[TargetCamera](storage, id); target != nil {
			return target.Entity
		}
		id = ecs.ParentOf(storage, id)
	}
	return ecs.NoEntity
}

// DefaultCamera returns the highest-order active camera drawing to the
// window, or NoEntity.
func DefaultCamera(storage *ecs.Storage) ecs.EntityId {
	cameras := render.SortedCameras(storage)
	for i := len(cameras) - 1; i >= 0; i-- {
		if cameras[i].Camera.Target.IsWindow() {
			return cameras[i].Entity
		}
	}
	return ecs.NoEntity
}

// NodesForCamera lists the UI nodes resolved to camera in draw order: each
// root before its descendants, roots in storage order.
func NodesForCamera(storage *ecs.Storage, camera ecs.EntityId) []ecs.EntityId {
	var out []ecs.EntityId
	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Node
		Parent *ecs.Parent `ecs:"optional"`
	}](storage)

	for root := range view.Values() {
		if root.Parent != nil {
			continue
		}
		if targetOf(storage, root.Id) == camera {
			out = append(out, root.Id)
		}
		for id := range ecs.Descendants(storage, root.Id) {
			if targetOf(storage, id) == camera {
				out = append(out, id)
			}
		}
	}
	return out
}

func targetOf(storage *ecs.Storage, id ecs.EntityId) ecs.EntityId {
	if t := ecs.ReadComponent[ComputedTarget](storage, id); t != nil {
		return t.Camera
	}
	return ecs.NoEntity
}
