package debugui

import (
	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
)

// SpawnDebugUI adds the overlay resources and panels to e and schedules
// ImguiSystem after the engine's own systems. The overlay starts hidden.
func SpawnDebugUI(e *engine.Engine) {
	RegisterDebugUIComponents(e.Registry)
	storage := e.Storage
	ecs.NewSingleton[ImguiInputState](storage)
	ecs.NewSingleton[Overlay](storage)

	timer := NewFrameTimer()
	spawnPanel(storage, NewRenderLayersComponent(e.Reaudit), func(p *RenderLayersComponent) {
		p.Render(storage)
	})
	spawnPanel(storage, NewEntityBrowserComponent(100), func(p *EntityBrowserComponent) {
		p.Render(storage)
	})
	spawnPanel(storage, NewPerformanceStatsComponent(120), func(p *PerformanceStatsComponent) {
		p.Render(storage, e.Scheduler.GetStats(), timer.GetDeltaTime())
	})

	e.AddSystem(&ImguiSystem{})
}

// spawnPanel stores panel on a new entity together with an ImguiItem that
// renders it.
func spawnPanel[T any](storage *ecs.Storage, panel T, render func(*T)) ecs.EntityId {
	id := storage.Reserve()
	storage.SpawnReserved(id, panel, ImguiItem{
		Render: func() {
			if p := ecs.ReadComponent[T](storage, id); p != nil {
				render(p)
			}
		},
	})
	return id
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[RenderLayersComponent](registry)
}
