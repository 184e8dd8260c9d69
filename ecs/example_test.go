package ecs_test

import (
	"fmt"

	"github.com/plus3/layercams/ecs"
)

type Transform struct {
	X, Y float32
}

type Label struct {
	Text string
}

// ExampleStorage shows spawning entities directly and reading them back.
func ExampleStorage() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Label](registry)
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Transform{X: 1, Y: 2}, Label{Text: "player"})
	storage.Spawn(Transform{X: 5, Y: 5})

	fmt.Println(storage.EntityCount(), ecs.ReadComponent[Label](storage, id).Text)

	// Output:
	// 2 player
}

// ExampleView shows iterating entities with an EntityId field and an
// optional component.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Label](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Transform{X: 1}, Label{Text: "labelled"})
	storage.Spawn(Transform{X: 2})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Transform
		Label *Label `ecs:"optional"`
	}](storage)

	for item := range view.Values() {
		if item.Label != nil {
			fmt.Printf("%.0f %s\n", item.Transform.X, item.Label.Text)
		} else {
			fmt.Printf("%.0f -\n", item.Transform.X)
		}
	}

	// Output:
	// 1 labelled
	// 2 -
}

// ExampleCommands shows building a small hierarchy through a command buffer.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Label](registry)
	storage := ecs.NewStorage(registry)

	commands := ecs.NewCommands(storage)
	root := commands.Spawn(Label{Text: "container"}).WithChildren(func(parent *ecs.ChildBuilder) {
		parent.Spawn(Label{Text: "button"}).WithChildren(func(parent *ecs.ChildBuilder) {
			parent.Spawn(Label{Text: "text"})
		})
	}).Id()

	fmt.Println("before flush:", storage.EntityCount())
	commands.Flush(storage)

	for id := range ecs.Descendants(storage, root) {
		fmt.Println(ecs.ReadComponent[Label](storage, id).Text)
	}

	// Output:
	// before flush: 0
	// button
	// text
}

type spawnLabel struct {
	text string
}

func (s *spawnLabel) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Label{Text: s.text})
}

type printLabels struct {
	Labels ecs.Query[struct{ *Label }]
}

func (s *printLabels) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Labels.Values() {
		fmt.Println("found", item.Label.Text)
	}
}

// ExampleScheduler_RegisterStartup shows chained startup systems. Commands
// from each startup system are applied before the next one runs.
func ExampleScheduler_RegisterStartup() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Label](registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterStartup(&spawnLabel{text: "camera"}, &printLabels{})

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	// Output:
	// found camera
}

type Clock struct {
	Frames int
}

type tick struct {
	Clock ecs.Singleton[Clock]
}

func (s *tick) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Frames++
}

// ExampleNewSingleton shows a resource shared by systems.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	ecs.NewSingleton[Clock](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&tick{})
	for range 3 {
		scheduler.Once(0.016)
	}

	fmt.Println(ecs.GetSingleton[Clock](storage).Frames)

	// Output:
	// 3
}
