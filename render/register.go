package render

import "github.com/plus3/layercams/ecs"

// RegisterComponents registers every render component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Visibility](registry)
	ecs.RegisterComponent[RenderLayers](registry)
	ecs.RegisterComponent[Handle[Mesh]](registry)
	ecs.RegisterComponent[Handle[StandardMaterial]](registry)
	ecs.RegisterComponent[PointLight](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[Projection](registry)
	ecs.RegisterComponent[VisibleEntities](registry)
}

// InitResources adds the asset stores and the clear color, keeping any that
// already exist.
func InitResources(storage *ecs.Storage, clear Color, window Window) {
	ecs.NewSingleton[Assets[Mesh]](storage)
	ecs.NewSingleton[Assets[StandardMaterial]](storage)
	ecs.NewSingleton[Assets[Image]](storage)
	ecs.NewSingleton[ClearColor](storage, ClearColor{Color: clear})
	ecs.NewSingleton[Window](storage, window)
}
