package ui

import "github.com/plus3/layercams/ecs"

// RegisterComponents registers every UI component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Node](registry)
	ecs.RegisterComponent[Style](registry)
	ecs.RegisterComponent[BackgroundColor](registry)
	ecs.RegisterComponent[BorderColor](registry)
	ecs.RegisterComponent[BorderRadius](registry)
	ecs.RegisterComponent[Button](registry)
	ecs.RegisterComponent[Interaction](registry)
	ecs.RegisterComponent[Text](registry)
	ecs.RegisterComponent[TargetCamera](registry)
	ecs.RegisterComponent[ComputedTarget](registry)
}

// InitResources adds the cursor and text measurer resources.
func InitResources(storage *ecs.Storage) {
	ecs.NewSingleton[Cursor](storage)
	ecs.NewSingleton[TextMeasurer](storage)
}
