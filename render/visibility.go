package render

import "github.com/plus3/layercams/ecs"

// VisibilitySystem fills every camera's VisibleEntities with the meshes and
// point lights that share at least one render layer with the camera.
type VisibilitySystem struct {
	Cameras ecs.Query[struct {
		*Camera
		*VisibleEntities
		Layers *RenderLayers `ecs:"optional"`
	}]
	Drawables ecs.Query[struct {
		Id ecs.EntityId
		*Transform
		Mesh       *Handle[Mesh] `ecs:"optional"`
		Light      *PointLight   `ecs:"optional"`
		Layers     *RenderLayers `ecs:"optional"`
		Visibility *Visibility   `ecs:"optional"`
	}]
}

func (s *VisibilitySystem) Execute(frame *ecs.UpdateFrame) {
	for camera := range s.Cameras.Values() {
		visible := camera.VisibleEntities
		visible.Meshes = visible.Meshes[:0]
		visible.Lights = visible.Lights[:0]
		if !camera.Camera.IsActive {
			continue
		}

		cameraLayers := layersOr(camera.Layers)
		for item := range s.Drawables.Values() {
			if item.Mesh == nil && item.Light == nil {
				continue
			}
			if item.Visibility != nil && *item.Visibility == Hidden {
				continue
			}
			if !layersOr(item.Layers).Intersects(cameraLayers) {
				continue
			}
			if item.Mesh != nil {
				visible.Meshes = append(visible.Meshes, item.Id)
			} else {
				visible.Lights = append(visible.Lights, item.Id)
			}
		}
	}
}
